// Package validate normalizes and validates invoice parameters. It never
// panics and never returns a partial success: callers get either a fully
// validated model or an aggregated error tree mirroring the input shape,
// so every problem is visible in one pass.
package validate

import "github.com/rezonia/eracun/internal/model"

// Result is the outcome of a validation call. Exactly one of Invoice and
// Errors is meaningful; Warnings may accompany either.
type Result struct {
	Invoice  *model.Invoice
	Errors   *model.Errors
	Warnings []string
}

// Valid reports whether validation passed.
func (r *Result) Valid() bool {
	return r.Errors.Empty()
}

// Params validates a loose nested parameter map: keys are normalized,
// defaults applied, the combined issue datetime split, then every section
// checked.
func Params(input map[string]interface{}) *Result {
	m := NormalizeKeys(input)
	inv, decodeErrs := decode(m)

	semanticErrs, warnings := validateInvoice(inv)
	decodeErrs.Merge(semanticErrs)

	if !decodeErrs.Empty() {
		return &Result{Errors: decodeErrs, Warnings: warnings}
	}
	return &Result{Invoice: inv, Warnings: warnings}
}

// Invoice validates an already-typed model, e.g. the output of the
// reverse parser before rebuilding.
func Invoice(inv *model.Invoice) *Result {
	errs, warnings := validateInvoice(inv)
	if !errs.Empty() {
		return &Result{Errors: errs, Warnings: warnings}
	}
	return &Result{Invoice: inv, Warnings: warnings}
}
