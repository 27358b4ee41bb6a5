// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds one transaction row with machine-friendly field names.
type ExportEntry struct {
	Date      string `json:"date" yaml:"date"`
	Asset     string `json:"asset" yaml:"asset"`
	Address   string `json:"address" yaml:"address"`
	Price     string `json:"price" yaml:"price"`
	Yield     string `json:"yield" yaml:"yield"`
	AreaType  string `json:"area_type" yaml:"area_type"`
	Area      string `json:"area" yaml:"area"`
	UnitPrice string `json:"price_psf" yaml:"price_psf"`
	Buyer     string `json:"buyer" yaml:"buyer"`
	Seller    string `json:"seller" yaml:"seller"`
	Comments  string `json:"comments" yaml:"comments"`
}

// ExportYAML writes the workbook rows to path as a YAML list.
func ExportYAML(t *Table, path string) error {
	data, err := yaml.Marshal(exportEntries(t))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the workbook rows to path as indented JSON.
func ExportJSON(t *Table, path string) error {
	data, err := json.MarshalIndent(exportEntries(t), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func exportEntries(t *Table) []ExportEntry {
	entries := make([]ExportEntry, len(t.Rows))
	for i := range t.Rows {
		entries[i] = ExportEntry{
			Date:      t.Cell(i, "Date"),
			Asset:     t.Cell(i, "Asset"),
			Address:   t.Cell(i, "Address"),
			Price:     t.Cell(i, "Price"),
			Yield:     t.Cell(i, "Yield "), // header carries a trailing space
			AreaType:  t.Cell(i, "Type of Area (Site/NLA/GFA)"),
			Area:      t.Cell(i, "Area (in sq ft)"),
			UnitPrice: t.Cell(i, "Price/Unit Area ($/psf)"),
			Buyer:     t.Cell(i, "Buyer"),
			Seller:    t.Cell(i, "Seller"),
			Comments:  t.Cell(i, "Comments"),
		}
	}
	return entries
}
