package validate

import (
	"fmt"

	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/registry"
)

// validateAllowanceCharge checks one typed allowance/charge entry. Shared
// rules apply at both levels; the tax category is mandatory at document
// level only (line-level categories were already stripped during decode).
func validateAllowanceCharge(ac *model.AllowanceCharge, documentLevel bool) (*model.Errors, []string) {
	errs := model.NewErrors()
	var warnings []string

	if ac.Amount == "" {
		errs.AddMessage("amount", "is required")
	} else if !isAmount(ac.Amount) {
		errs.AddMessage("amount", "must be a non-negative decimal string")
	}

	if ac.Reason != "" {
		if ac.Charge {
			if !registry.ChargeReasons.Valid(ac.Reason) {
				errs.AddMessage("reason", "is not a known charge reason")
			}
		} else {
			if !registry.AllowanceReasons.Valid(ac.Reason) {
				errs.AddMessage("reason", "is not a known allowance reason")
			}
		}
	}

	if ac.Percent != nil && *ac.Percent < 0 {
		errs.AddMessage("percent", "must not be negative")
	}
	if ac.BaseAmount != "" && !isAmount(ac.BaseAmount) {
		errs.AddMessage("base_amount", "must be a non-negative decimal string")
	}

	if documentLevel {
		if ac.TaxCategory == nil {
			errs.AddMessage("tax_category", "is required for document-level allowance/charge")
		} else {
			catErrs, catWarnings := validateTaxCategory(ac.TaxCategory)
			errs.Add("tax_category", catErrs)
			warnings = append(warnings, catWarnings...)
		}
	}

	return errs, warnings
}

// DocumentAllowanceCharge validates a single loose document-level
// allowance/charge record, returning the normalized record or an ordered
// list of human-readable error strings.
func DocumentAllowanceCharge(input map[string]interface{}) (model.AllowanceCharge, []string) {
	return allowanceCharge(input, true)
}

// LineAllowanceCharge validates a single loose line-level record. A
// supplied tax category is discarded without error.
func LineAllowanceCharge(input map[string]interface{}) (model.AllowanceCharge, []string) {
	return allowanceCharge(input, false)
}

func allowanceCharge(input map[string]interface{}, documentLevel bool) (model.AllowanceCharge, []string) {
	m := NormalizeKeys(input)

	if raw, ok := m["charge"]; ok {
		if _, isBool := raw.(bool); !isBool {
			return model.AllowanceCharge{}, []string{"charge: must be a boolean"}
		}
	}

	ac, decErrs := decodeAllowanceCharge(m, documentLevel)
	valErrs, _ := validateAllowanceCharge(&ac, documentLevel)
	decErrs.Merge(valErrs)

	if !decErrs.Empty() {
		return model.AllowanceCharge{}, decErrs.Flatten()
	}
	return ac, nil
}

// DocumentAllowanceCharges validates a loose list, indexing failures per
// entry as allowance_charge_n.
func DocumentAllowanceCharges(inputs []map[string]interface{}) ([]model.AllowanceCharge, []string) {
	return allowanceCharges(inputs, true)
}

// LineAllowanceCharges is the line-level list wrapper.
func LineAllowanceCharges(inputs []map[string]interface{}) ([]model.AllowanceCharge, []string) {
	return allowanceCharges(inputs, false)
}

func allowanceCharges(inputs []map[string]interface{}, documentLevel bool) ([]model.AllowanceCharge, []string) {
	var out []model.AllowanceCharge
	var failures []string

	for i, input := range inputs {
		ac, errs := allowanceCharge(input, documentLevel)
		if len(errs) > 0 {
			for _, msg := range errs {
				failures = append(failures, fmt.Sprintf("allowance_charge_%d: %s", i+1, msg))
			}
			continue
		}
		out = append(out, ac)
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return out, nil
}
