// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
)

// SchemaField describes one property of the extraction schema sent to the
// model. The table below is the single source of truth for field names,
// descriptions, and the required set; RawTransaction's JSON tags mirror
// the Name column.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// schemaFields lists the extraction schema properties in output order.
var schemaFields = []SchemaField{
	{
		Name:        "Date",
		Type:        "string",
		Description: "The date the transaction was announced or published (e.g., 'Dec 05, 2025').",
		Required:    true,
	},
	{
		Name:        "Asset",
		Type:        "string",
		Description: "The name of the commercial property (e.g., 'The Clementi Mall').",
		Required:    true,
	},
	{
		Name:        "Address",
		Type:        "string",
		Description: "The physical address of the property. Extract only if explicitly mentioned.",
	},
	{
		Name:        "Price",
		Type:        "string",
		Description: "The transaction price, including currency and magnitude (e.g., '$809 million').",
		Required:    true,
	},
	{
		Name:        "Yield",
		Type:        "string",
		Description: "The net yield percentage (e.g., '4.1 per cent').",
	},
	{
		Name:        "Type of Area (Site/NLA/GFA)",
		Type:        "string",
		Description: "The type of area mentioned, must be one of 'Site', 'NLA' (Net Lettable Area), or 'GFA' (Gross Floor Area).",
	},
	{
		Name:        "Area (in sq ft)",
		Type:        "string",
		Description: "The area size in square feet (e.g., '195,772 sq ft').",
	},
	{
		Name:        "Price/Unit Area ($/psf)",
		Type:        "string",
		Description: "The price per unit area (e.g., '$4,100 per square foot').",
	},
	{
		Name:        "Buyer",
		Type:        "string",
		Description: "The name of the buyer entity.",
		Required:    true,
	},
	{
		Name:        "Seller",
		Type:        "string",
		Description: "The name of the seller entity.",
		Required:    true,
	},
	{
		Name:        "Comments",
		Type:        "string",
		Description: "Any other relevant details like lease tenure, deal context, or brokers involved.",
	},
}

// schemaDoc is the JSON schema rendered from schemaFields, built once at
// package init. Rendering iterates the table so property order is stable
// across runs; marshaling a map would not be.
var schemaDoc = buildSchemaDoc()

func buildSchemaDoc() string {
	var b strings.Builder
	b.WriteString("{\n  \"type\": \"object\",\n  \"properties\": {\n")

	for i, f := range schemaFields {
		name, _ := json.Marshal(f.Name)
		typ, _ := json.Marshal(f.Type)
		desc, _ := json.Marshal(f.Description)

		b.WriteString("    ")
		b.Write(name)
		b.WriteString(": {\n      \"type\": ")
		b.Write(typ)
		b.WriteString(",\n      \"description\": ")
		b.Write(desc)
		b.WriteString("\n    }")
		if i < len(schemaFields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString("  },\n  \"required\": [\n")
	first := true
	for _, f := range schemaFields {
		if !f.Required {
			continue
		}
		if !first {
			b.WriteString(",\n")
		}
		first = false
		name, _ := json.Marshal(f.Name)
		b.WriteString("    ")
		b.Write(name)
	}
	b.WriteString("\n  ]\n}")

	return b.String()
}

// systemPrompt returns the analyst persona instruction with the embedded
// extraction schema. Models are told to leave unfound fields empty rather
// than omitting or inventing them.
func systemPrompt() string {
	return "You are a commercial real estate analyst. Your task is to extract structured " +
		"transaction data from a news article. Be precise and only use information " +
		"explicitly stated in the text. If a field is not found, use an empty string. " +
		"The output MUST be a JSON object that strictly conforms to the following JSON schema:\n" +
		schemaDoc
}

// userPromptTmpl wraps the article text in delimiters so the model does not
// confuse instructions with content.
var userPromptTmpl = template.Must(template.New("extraction").Parse(
	`Extract the commercial real estate transaction details from the following news article text:

---
{{.Article}}
---
`))

// renderUserPrompt executes the extraction prompt template with the article text.
func renderUserPrompt(article string) (string, error) {
	var buf bytes.Buffer
	if err := userPromptTmpl.Execute(&buf, struct{ Article string }{Article: article}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
