// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// RawTransaction is the extraction output for one article, all fields as
// strings exactly as the model returned them. JSON tags match the property
// names the model is instructed to emit; fields the model could not find
// arrive as empty strings.
type RawTransaction struct {
	// Date is the date the transaction was announced or published.
	Date string `json:"Date"`

	// Asset is the name of the commercial property.
	Asset string `json:"Asset"`

	// Address is the physical address, if explicitly mentioned.
	Address string `json:"Address"`

	// Price is the transaction price including currency and magnitude
	// (e.g. "$809 million").
	Price string `json:"Price"`

	// Yield is the net yield (e.g. "4.1 per cent").
	Yield string `json:"Yield"`

	// AreaType is one of "Site", "NLA", or "GFA".
	AreaType string `json:"Type of Area (Site/NLA/GFA)"`

	// Area is the area size in square feet (e.g. "195,772 sq ft").
	Area string `json:"Area (in sq ft)"`

	// UnitPrice is the price per unit area (e.g. "$4,100 per square foot").
	UnitPrice string `json:"Price/Unit Area ($/psf)"`

	// Buyer is the name of the buying entity.
	Buyer string `json:"Buyer"`

	// Seller is the name of the selling entity.
	Seller string `json:"Seller"`

	// Comments holds other relevant details such as lease tenure or brokers.
	Comments string `json:"Comments"`
}

// FieldKind discriminates the states a normalized field can be in.
type FieldKind string

const (
	// FieldEmpty marks a field the model left blank.
	FieldEmpty FieldKind = "empty"

	// FieldNumber marks a field parsed to a float (prices, yields).
	FieldNumber FieldKind = "number"

	// FieldCount marks a field parsed to an integer (areas).
	FieldCount FieldKind = "count"

	// FieldText marks a field kept as its original string, either because
	// it is free text or because numeric parsing failed.
	FieldText FieldKind = "text"
)

// FieldValue is the result of normalizing one source field. Exactly one of
// Num, Count, or Text is meaningful, selected by Kind. Normalization never
// discards data: an unparseable value is carried as FieldText with the
// original string.
type FieldValue struct {
	Kind  FieldKind
	Num   float64
	Count int64
	Text  string
}

// EmptyValue returns a FieldValue for a blank source field.
func EmptyValue() FieldValue {
	return FieldValue{Kind: FieldEmpty}
}

// NumberValue returns a FieldValue holding a parsed float.
func NumberValue(f float64) FieldValue {
	return FieldValue{Kind: FieldNumber, Num: f}
}

// CountValue returns a FieldValue holding a parsed integer.
func CountValue(n int64) FieldValue {
	return FieldValue{Kind: FieldCount, Count: n}
}

// TextValue returns a FieldValue carrying the original string.
func TextValue(s string) FieldValue {
	return FieldValue{Kind: FieldText, Text: s}
}

// Cell returns the value to store in a spreadsheet cell: float64, int64,
// string, or nil for an empty field.
func (v FieldValue) Cell() any {
	switch v.Kind {
	case FieldNumber:
		return v.Num
	case FieldCount:
		return v.Count
	case FieldText:
		return v.Text
	default:
		return nil
	}
}

// String renders the value for display. Empty fields render as "".
func (v FieldValue) String() string {
	switch v.Kind {
	case FieldNumber:
		return trimFloat(v.Num)
	case FieldCount:
		return formatInt(v.Count)
	case FieldText:
		return v.Text
	default:
		return ""
	}
}

// Record is one normalized transaction row, ready for persistence. String
// fields pass through from the extraction; the four numeric fields carry
// their normalization results.
type Record struct {
	Date      string
	Asset     string
	Address   string
	Price     FieldValue
	Yield     FieldValue
	AreaType  string
	Area      FieldValue
	UnitPrice FieldValue
	Buyer     string
	Seller    string
	Comments  string
}

// transactionColumns is the workbook header, in order. "Yield " carries a
// trailing space: the legacy workbooks were created with that header and
// row values are matched to columns by exact name.
var transactionColumns = []string{
	"Date",
	"Asset",
	"Address",
	"Price",
	"Yield ",
	"Type of Area (Site/NLA/GFA)",
	"Area (in sq ft)",
	"Price/Unit Area ($/psf)",
	"Buyer",
	"Seller",
	"Comments",
}

// Columns returns the workbook column names in canonical order.
func Columns() []string {
	cols := make([]string, len(transactionColumns))
	copy(cols, transactionColumns)
	return cols
}

// Row returns the record's cell values aligned with Columns(). Empty fields
// yield nil entries, which persist as blank cells.
func (r Record) Row() []any {
	return []any{
		cellOrNil(r.Date),
		cellOrNil(r.Asset),
		cellOrNil(r.Address),
		r.Price.Cell(),
		r.Yield.Cell(),
		cellOrNil(r.AreaType),
		r.Area.Cell(),
		r.UnitPrice.Cell(),
		cellOrNil(r.Buyer),
		cellOrNil(r.Seller),
		cellOrNil(r.Comments),
	}
}

// ByColumn returns the record's cell values keyed by workbook column name,
// for header-order-independent writes against legacy files.
func (r Record) ByColumn() map[string]any {
	cols := transactionColumns
	row := r.Row()
	m := make(map[string]any, len(cols))
	for i, c := range cols {
		m[c] = row[i]
	}
	return m
}

func cellOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
