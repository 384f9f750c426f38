package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
)

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func invoiceSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildInvoiceJSONSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("invoice.schema.json", bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("invoice.schema.json")
	})
	return compiledSchema, schemaErr
}

// ValidateInvoice checks a record against the extraction contract. A failure
// means the heuristics produced an out-of-contract value; it is a validation
// error in this process, never a property of the document.
func ValidateInvoice(inv entity.ExtractedInvoice) error {
	sch, err := invoiceSchema()
	if err != nil {
		return fmt.Errorf("compile invoice schema: %w", err)
	}
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal invoice: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}
