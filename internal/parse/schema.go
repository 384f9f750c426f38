package parse

// BuildInvoiceJSONSchema returns the extraction record contract as a JSON
// Schema (draft 2020-12 subset) in generic map form. Every outgoing record is
// validated against it before leaving the pipeline.
func BuildInvoiceJSONSchema() map[string]any {
	props := map[string]any{
		"supplier":       map[string]any{"type": "string"},
		"invoice_number": map[string]any{"type": "string"},
		"invoice_date":   map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"is_system_date": map[string]any{"type": "boolean"},
		"total_amount":   moneyProp(),
		"gst_amount":     moneyProp(),
		"net_amount":     moneyProp(),
		"gst_derived":    map[string]any{"type": "boolean"},
		"raw_text":       map[string]any{"type": "string"},
	}
	required := []string{
		"supplier", "invoice_number", "invoice_date", "is_system_date",
		"total_amount", "gst_amount", "net_amount", "gst_derived", "raw_text",
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func moneyProp() map[string]any {
	return map[string]any{
		"type":    "number",
		"minimum": 0.0,
	}
}
