// Package eracun is the public entry point for the invoice codec:
// validate loose parameters, build the national-profile UBL document,
// and parse such documents back into the model.
package eracun

import (
	"github.com/rezonia/eracun/internal/builder"
	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/parser"
	"github.com/rezonia/eracun/internal/validate"
)

// GenerateResult carries the generated document or the validation
// failure, plus any warnings.
type GenerateResult struct {
	XML      []byte
	Invoice  *model.Invoice
	Errors   *model.Errors
	Warnings []string
}

// Valid reports whether generation succeeded.
func (r *GenerateResult) Valid() bool {
	return r.Errors.Empty()
}

// Codec validates, builds and parses invoice documents. It is stateless
// and safe for concurrent use.
type Codec struct{}

// NewCodec creates a codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Generate validates loose parameters and builds the XML document.
// Validation failure is reported in the result, not as an error; the
// error return covers serialization only.
func (c *Codec) Generate(params map[string]interface{}) (*GenerateResult, error) {
	result := validate.Params(params)
	if !result.Valid() {
		return &GenerateResult{Errors: result.Errors, Warnings: result.Warnings}, nil
	}
	return c.GenerateModel(result.Invoice, result.Warnings)
}

// GenerateModel builds the XML document from an already-validated model.
func (c *Codec) GenerateModel(inv *model.Invoice, warnings []string) (*GenerateResult, error) {
	xml, err := builder.Build(inv)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{XML: xml, Invoice: inv, Warnings: warnings}, nil
}

// Parse reconstructs the invoice model from XML text.
func (c *Codec) Parse(data []byte) (*model.Invoice, error) {
	return parser.Parse(data)
}

// Validate runs parameter validation without building a document.
func (c *Codec) Validate(params map[string]interface{}) *validate.Result {
	return validate.Params(params)
}

// RoundTrip builds the document for a validated model, parses it back
// and returns the reconstructed model. Used to confirm that generated
// output survives re-parsing.
func (c *Codec) RoundTrip(inv *model.Invoice) (*model.Invoice, error) {
	xml, err := builder.Build(inv)
	if err != nil {
		return nil, err
	}
	return parser.Parse(xml)
}

// GenerateBatch generates documents for multiple parameter sets
// concurrently. Results keep input order; the first serialization error
// is returned after all inputs finish.
func (c *Codec) GenerateBatch(inputs []map[string]interface{}) ([]*GenerateResult, error) {
	results := make([]*GenerateResult, len(inputs))
	errCh := make(chan error, len(inputs))

	for i, params := range inputs {
		go func(idx int, p map[string]interface{}) {
			result, err := c.Generate(p)
			if err != nil {
				errCh <- err
				return
			}
			results[idx] = result
			errCh <- nil
		}(i, params)
	}

	var firstErr error
	for range inputs {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
