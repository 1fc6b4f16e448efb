// Package normalizer turns raw CSV cell values into display-ready text.
package normalizer

import "strings"

// Fallback texts.
const (
	NotAvailable   = "k.A."
	PriceOnRequest = "Preis auf Anfrage"
	No             = "Nein"
)

// FormatPrice strips the euro sign from a price. The number itself is not parsed,
// so malformed text passes through.
func FormatPrice(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return PriceOnRequest
	}

	return strings.TrimSpace(strings.ReplaceAll(raw, "€", ""))
}

// FormatProfileDepth renders a tread depth as "<int>,<frac> mm" or "<value> mm".
// Only the first two comma-separated segments are used.
func FormatProfileDepth(raw string) string {
	depth := strings.TrimSpace(raw)
	if depth == "" {
		return NotAvailable
	}

	depth = strings.TrimSpace(strings.TrimSuffix(depth, "mm"))

	if strings.Contains(depth, ",") {
		parts := strings.Split(depth, ",")

		return strings.TrimSpace(parts[0]) + "," + strings.TrimSpace(parts[1]) + " mm"
	}

	return depth + " mm"
}

// SafeValue returns the trimmed value, or "k.A." when it is blank.
func SafeValue(raw string) string {
	return SafeValueOr(raw, NotAvailable)
}

// SafeValueOr returns the trimmed value, or def when it is blank.
func SafeValueOr(raw, def string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return def
	}

	return value
}
