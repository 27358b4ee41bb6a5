package types

import "testing"

func TestColumnsOrder(t *testing.T) {
	want := []string{
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

	got := Columns()
	if len(got) != len(want) {
		t.Fatalf("got %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Legacy workbooks carry a trailing space in the yield header.
	if got[4] != "Yield " {
		t.Errorf("yield column = %q, want %q", got[4], "Yield ")
	}
}

func TestColumnsReturnsCopy(t *testing.T) {
	a := Columns()
	a[0] = "mutated"
	b := Columns()
	if b[0] != "Date" {
		t.Errorf("Columns() shares backing array: got %q", b[0])
	}
}

func TestRowAlignsWithColumns(t *testing.T) {
	rec := Record{
		Date:      "Dec 05, 2025",
		Asset:     "The Clementi Mall",
		Price:     NumberValue(809000000),
		Yield:     NumberValue(4.1),
		AreaType:  "NLA",
		Area:      CountValue(195772),
		UnitPrice: NumberValue(4100),
		Buyer:     "CLCT",
		Seller:    "Lendlease",
	}

	row := rec.Row()
	if len(row) != len(Columns()) {
		t.Fatalf("row has %d cells, want %d", len(row), len(Columns()))
	}

	if row[0] != "Dec 05, 2025" {
		t.Errorf("date cell = %v", row[0])
	}
	if row[1] != "The Clementi Mall" {
		t.Errorf("asset cell = %v", row[1])
	}
	if row[3] != float64(809000000) {
		t.Errorf("price cell = %v, want 8.09e8", row[3])
	}
	if row[6] != int64(195772) {
		t.Errorf("area cell = %v, want int64(195772)", row[6])
	}
	if row[2] != nil {
		t.Errorf("empty address cell = %v, want nil", row[2])
	}
}

func TestByColumn(t *testing.T) {
	rec := Record{Asset: "Keppel Towers", Yield: NumberValue(3.5)}
	m := rec.ByColumn()

	if m["Asset"] != "Keppel Towers" {
		t.Errorf(`m["Asset"] = %v`, m["Asset"])
	}
	if m["Yield "] != 3.5 {
		t.Errorf(`m["Yield "] = %v, want 3.5`, m["Yield "])
	}
	if _, ok := m["Yield"]; ok {
		t.Error(`m["Yield"] (no trailing space) should not exist`)
	}
}

func TestFieldValueCell(t *testing.T) {
	tests := []struct {
		name string
		v    FieldValue
		want any
	}{
		{"empty", EmptyValue(), nil},
		{"number", NumberValue(4.1), 4.1},
		{"count", CountValue(195772), int64(195772)},
		{"text", TextValue("undisclosed"), "undisclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Cell(); got != tt.want {
				t.Errorf("Cell() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestFieldValueString(t *testing.T) {
	tests := []struct {
		v    FieldValue
		want string
	}{
		{EmptyValue(), ""},
		{NumberValue(809000000), "809000000"},
		{NumberValue(4.1), "4.1"},
		{CountValue(195772), "195772"},
		{TextValue("about 4%"), "about 4%"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
