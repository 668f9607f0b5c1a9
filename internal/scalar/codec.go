// Package scalar converts between wire text and typed field values.
//
// Every function is pure. Decoders trim surrounding whitespace and report
// failures as *model.DecodeError of kind type_conversion; callers tag the
// error with the section and wire tag.
package scalar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/nfe-mapper/internal/decimal"
	"github.com/rezonia/nfe-mapper/internal/model"
)

// Kind names a scalar kind in error messages
type Kind string

const (
	KindText     Kind = "text"
	KindInteger  Kind = "integer"
	KindDecimal  Kind = "decimal"
	KindAmount   Kind = "non-negative decimal"
	KindDateTime Kind = "date-time"
	KindFlag     Kind = "flag"
)

// DateTimeLayout is the canonical encoding of date-times
const DateTimeLayout = "2006-01-02T15:04:05-07:00"

// Layouts accepted on decode, tried in order
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

// Sentinels meaning "no barcode", compared case-insensitively
var noBarcode = []string{"SEM GTIN", "SEM EAN"}

// NoBarcode is emitted when a product has no barcode
const NoBarcode = "SEM GTIN"

// DecodeText trims surrounding whitespace
func DecodeText(text string) string {
	return strings.TrimSpace(text)
}

// DecodeInt parses a base-10 integer
func DecodeInt(text string) (int, error) {
	t := strings.TrimSpace(text)
	v, err := strconv.Atoi(t)
	if err != nil {
		return 0, conversion(KindInteger, t, err)
	}
	return v, nil
}

// EncodeInt renders v zero-padded to width digits; width 0 means no padding
func EncodeInt(v, width int) string {
	if width <= 0 {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%0*d", width, v)
}

// DecodeDecimal parses a decimal keeping its scale
func DecodeDecimal(text string) (decimal.Decimal, error) {
	t := strings.TrimSpace(text)
	d, err := dec.FromString(t)
	if err != nil {
		return dec.Zero, conversion(KindDecimal, t, err)
	}
	return d, nil
}

// DecodeAmount parses a monetary or quantity value, which must not be negative
func DecodeAmount(text string) (decimal.Decimal, error) {
	t := strings.TrimSpace(text)
	d, err := dec.FromString(t)
	if err != nil {
		return dec.Zero, conversion(KindAmount, t, err)
	}
	if !dec.IsNonNegative(d) {
		return dec.Zero, conversion(KindAmount, t, nil)
	}
	return d, nil
}

// EncodeDecimal renders d with its original scale
func EncodeDecimal(d decimal.Decimal) string {
	return dec.Format(d)
}

// EncodeAmount renders a monetary or quantity value; negative values cannot
// be decoded back and are rejected
func EncodeAmount(d decimal.Decimal) (string, error) {
	text := dec.Format(d)
	if !dec.IsNonNegative(d) {
		return text, model.NewInvalidVariantError("", "", text, "amount must not be negative")
	}
	return text, nil
}

// DecodeDateTime parses a timestamp with or without offset and normalises
// it to UTC. Timestamps without offset are taken as UTC.
func DecodeDateTime(text string) (time.Time, error) {
	t := strings.TrimSpace(text)
	var lastErr error
	for _, layout := range dateTimeLayouts {
		v, err := time.Parse(layout, t)
		if err == nil {
			return v.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, conversion(KindDateTime, t, lastErr)
}

// EncodeDateTime renders t in UTC with an explicit "+00:00" offset
func EncodeDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// DecodeFlag parses "1" / "0"
func DecodeFlag(text string) (bool, error) {
	switch t := strings.TrimSpace(text); t {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, conversion(KindFlag, t, nil)
	}
}

// EncodeFlag renders b as "1" / "0"
func EncodeFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// DecodeBarcode returns nil for an empty element and for the "no barcode"
// sentinels. Any other text is kept verbatim.
func DecodeBarcode(text string) *string {
	if strings.TrimSpace(text) == "" || IsNoBarcode(text) {
		return nil
	}
	return &text
}

// EncodeBarcode renders a missing barcode as the canonical sentinel
func EncodeBarcode(code *string) string {
	if code == nil {
		return NoBarcode
	}
	return *code
}

// IsNoBarcode reports whether text is one of the "no barcode" sentinels
func IsNoBarcode(text string) bool {
	t := strings.TrimSpace(text)
	for _, s := range noBarcode {
		if strings.EqualFold(t, s) {
			return true
		}
	}
	return false
}

func conversion(kind Kind, text string, cause error) *model.DecodeError {
	return model.NewTypeConversionError("", "", string(kind), text, cause)
}
