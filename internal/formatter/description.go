// Package formatter renders listing texts and console tables.
package formatter

import (
	"fmt"
	"strings"

	"wheellister/internal/models"
	"wheellister/internal/normalizer"
)

const greeting = "Hallo und herzlich willkommen bei einem Angebot von R&S Ihr Autohaus.\n" +
	"Kommen Sie gerne vorbei und holen den Artikel direkt bei uns im Lager ab.\n"

// CreateDescription fills the listing template for one wheel/tire set.
// Blank fields fall back to "k.A." except where noted.
func CreateDescription(row models.Row) string {
	v := func(key string) string {
		return normalizer.SafeValue(row.Get(key))
	}

	var sb strings.Builder

	sb.WriteString(greeting)
	sb.WriteString("\n")

	sb.WriteString("Artikelbeschreibung:\n")
	sb.WriteString("Zustand: Gebraucht\n")
	fmt.Fprintf(&sb, "Anzahl: %s Kompletträder\n", v(models.FieldAnzahl))
	sb.WriteString("\n")

	sb.WriteString("Felgen:\n")
	fmt.Fprintf(&sb, "Material: %s\n", v(models.FieldFelgenmaterial))
	fmt.Fprintf(&sb, "Hersteller: %s\n", v(models.FieldFelgenhersteller))
	fmt.Fprintf(&sb, "Teilenummer: %s\n", v(models.FieldHerstellernummerFelge))
	fmt.Fprintf(&sb, "Felgenmaße: %sJ x %s ET%s\n",
		v(models.FieldFelgenbreite), v(models.FieldZoll), v(models.FieldEinpresstiefe))
	fmt.Fprintf(&sb, "Lochkreis: %sx %s\n", v(models.FieldLochzahl), v(models.FieldLochkreis))
	fmt.Fprintf(&sb, "Farbe: %s\n", v(models.FieldFelgenfarbe))
	sb.WriteString("\n")

	sb.WriteString("Reifen:\n")
	fmt.Fprintf(&sb, "Jahreszeit: %s\n", v(models.FieldReifenspezifikation))
	fmt.Fprintf(&sb, "Hersteller: %s\n", v(models.FieldReifenhersteller))
	fmt.Fprintf(&sb, "Modell: %s\n", v(models.FieldReifenmodell))
	fmt.Fprintf(&sb, "Reifengröße: %s/%s R%s %s%s\n",
		v(models.FieldReifenbreite),
		v(models.FieldReifenquerschnitt),
		v(models.FieldZoll),
		v(models.FieldTragfaehigkeitsindex),
		v(models.FieldGeschwindigkeitsindex),
	)
	fmt.Fprintf(&sb, "Profiltiefe: %s\n", normalizer.FormatProfileDepth(row.Get(models.FieldProfiltiefe)))
	fmt.Fprintf(&sb, "DOT: %s\n", v(models.FieldDOT))
	fmt.Fprintf(&sb, "Schneeflocken-Symbol: %s\n",
		normalizer.SafeValueOr(row.Get(models.FieldSchneeflockenSymbol), normalizer.No))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Fahrzeugtyp: %s\n", v(models.FieldFahrzeugtyp))
	// The trailing space after the euro sign is part of the published layout.
	fmt.Fprintf(&sb, "Preis: %s€ \n", normalizer.FormatPrice(row.Get(models.FieldBuyItNowPrice)))
	sb.WriteString("Versand: 50€\n")
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "(INTERN: %s)\n", v(models.FieldVAT))

	return sb.String()
}
