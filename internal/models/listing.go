// Package models defines the data structures shared by the listing pipeline.
package models

// Column names of the wheel/tire CSV export.
const (
	FieldBuyItNowPrice         = "BuyItNowPrice"
	FieldAnzahl                = "Anzahl"
	FieldFelgenmaterial        = "Felgenmaterial"
	FieldFelgenhersteller      = "Felgenhersteller"
	FieldHerstellernummerFelge = "Herstellernummer_Felge"
	FieldFelgenbreite          = "Felgenbreite"
	FieldZoll                  = "Zoll"
	FieldEinpresstiefe         = "Einpresstiefe"
	FieldLochzahl              = "Lochzahl"
	FieldLochkreis             = "Lochkreis"
	FieldFelgenfarbe           = "Felgenfarbe"
	FieldReifenspezifikation   = "Reifenspezifikation"
	FieldReifenhersteller      = "Reifenhersteller"
	FieldReifenmodell          = "Reifenmodell"
	FieldReifenbreite          = "Reifenbreite"
	FieldReifenquerschnitt     = "Reifenquerschnitt"
	FieldTragfaehigkeitsindex  = "Tragfaehigkeitsindex"
	FieldGeschwindigkeitsindex = "Geschwindigkeitsindex"
	FieldProfiltiefe           = "Profiltiefe"
	FieldDOT                   = "DOT"
	FieldSchneeflockenSymbol   = "C:Schneeflocken-Symbol"
	FieldFahrzeugtyp           = "Fahrzeugtyp"
	FieldVAT                   = "VAT"
)

// Row maps a CSV header name to the raw cell value.
// A missing key is treated the same as an empty value.
type Row map[string]string

// Get returns the raw value for key, or "" when the column is absent.
func (r Row) Get(key string) string {
	return r[key]
}

// Record is one data line read from the source.
type Record struct {
	Err   error // set when the line could not be parsed
	Row   Row
	Index int
}

// Listing is the generated sales text for one row.
type Listing struct {
	FileName string
	Content  string
	Checksum string
	Index    int
}
