// Package normalize coerces extracted transaction fields into typed values.
// Each rule is a pure function from the model's string output to a
// FieldValue. Rules never fail: a value that cannot be parsed is returned
// as text, preserving the original string.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meshintel/cre-ledger/pkg/types"
)

// requiredFields are checked when strict assembly is requested.
var requiredFields = []string{"Date", "Asset", "Price", "Buyer", "Seller"}

// Price parses a transaction price such as "$809 million" into a float.
// Currency symbols and thousands separators are stripped; a trailing
// "million" or "billion" applies the corresponding multiplier.
func Price(value string) types.FieldValue {
	if value == "" {
		return types.EmptyValue()
	}

	s := strings.ToLower(value)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	multiplier := 1.0
	if strings.Contains(s, "billion") {
		multiplier = 1e9
		s = strings.TrimSpace(strings.ReplaceAll(s, "billion", ""))
	} else if strings.Contains(s, "million") {
		multiplier = 1e6
		s = strings.TrimSpace(strings.ReplaceAll(s, "million", ""))
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.TextValue(value)
	}
	return types.NumberValue(f * multiplier)
}

// Yield parses a yield such as "about 4.1 per cent" into a float.
func Yield(value string) types.FieldValue {
	if value == "" {
		return types.EmptyValue()
	}

	s := strings.ToLower(value)
	s = strings.ReplaceAll(s, "about", "")
	s = strings.ReplaceAll(s, "per cent", "")
	s = strings.ReplaceAll(s, "%", "")
	s = keepDigitsAndDots(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.TextValue(value)
	}
	return types.NumberValue(f)
}

// Area parses an area such as "195,772 sq ft" into an integer.
func Area(value string) types.FieldValue {
	if value == "" {
		return types.EmptyValue()
	}

	s := strings.ToLower(value)
	s = strings.ReplaceAll(s, "sq ft", "")
	s = strings.ReplaceAll(s, ",", "")
	s = keepDigits(s)

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return types.TextValue(value)
	}
	return types.CountValue(n)
}

// UnitPrice parses a per-unit price such as "$4,100 per square foot"
// into a float.
func UnitPrice(value string) types.FieldValue {
	if value == "" {
		return types.EmptyValue()
	}

	s := strings.ToLower(value)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "per square foot", "")
	s = strings.ReplaceAll(s, "psf", "")
	s = strings.ReplaceAll(s, ",", "")
	s = keepDigitsAndDots(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.TextValue(value)
	}
	return types.NumberValue(f)
}

// Apply assembles a Record from the raw extraction, running each numeric
// field through its rule. With strict set, it rejects extractions whose
// required fields are blank; otherwise missing fields pass through empty.
func Apply(raw types.RawTransaction, strict bool) (types.Record, error) {
	if strict {
		if missing := missingRequired(raw); len(missing) > 0 {
			return types.Record{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
		}
	}

	return types.Record{
		Date:      raw.Date,
		Asset:     raw.Asset,
		Address:   raw.Address,
		Price:     Price(raw.Price),
		Yield:     Yield(raw.Yield),
		AreaType:  raw.AreaType,
		Area:      Area(raw.Area),
		UnitPrice: UnitPrice(raw.UnitPrice),
		Buyer:     raw.Buyer,
		Seller:    raw.Seller,
		Comments:  raw.Comments,
	}, nil
}

func missingRequired(raw types.RawTransaction) []string {
	present := map[string]string{
		"Date":   raw.Date,
		"Asset":  raw.Asset,
		"Price":  raw.Price,
		"Buyer":  raw.Buyer,
		"Seller": raw.Seller,
	}

	var missing []string
	for _, name := range requiredFields {
		if strings.TrimSpace(present[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// keepDigitsAndDots strips every character except digits and decimal points.
func keepDigitsAndDots(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keepDigits strips every non-digit character.
func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
