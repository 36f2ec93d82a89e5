package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocumentAC() map[string]interface{} {
	return map[string]interface{}{
		"charge":      false,
		"amount":      "10.00",
		"reason":      "95",
		"reason_text": "Discount",
		"tax_category": map[string]interface{}{
			"id":      "standard_rate",
			"percent": 25.0,
			"scheme":  "vat",
		},
	}
}

func TestDocumentAllowanceCharge(t *testing.T) {
	ac, errs := DocumentAllowanceCharge(validDocumentAC())
	require.Empty(t, errs)
	assert.False(t, ac.Charge)
	assert.Equal(t, "10.00", ac.Amount)
	require.NotNil(t, ac.TaxCategory)
	assert.Equal(t, "standard_rate", ac.TaxCategory.ID)
}

func TestDocumentAllowanceChargeRequiresTaxCategory(t *testing.T) {
	input := validDocumentAC()
	delete(input, "tax_category")

	_, errs := DocumentAllowanceCharge(input)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "tax_category: is required for document-level allowance/charge")
}

func TestLineAllowanceChargeDropsTaxCategory(t *testing.T) {
	// The same record that is valid at document level is valid at line
	// level too, but the tax category never reaches the model.
	ac, errs := LineAllowanceCharge(validDocumentAC())
	require.Empty(t, errs)
	assert.Nil(t, ac.TaxCategory)
}

func TestLineAllowanceChargeWithoutTaxCategory(t *testing.T) {
	input := validDocumentAC()
	delete(input, "tax_category")

	_, errs := LineAllowanceCharge(input)
	assert.Empty(t, errs)
}

func TestAllowanceChargeTypeCheck(t *testing.T) {
	input := validDocumentAC()
	input["charge"] = "yes"

	_, errs := DocumentAllowanceCharge(input)
	require.Len(t, errs, 1)
	assert.Equal(t, "charge: must be a boolean", errs[0])
}

func TestAllowanceChargeReasonTables(t *testing.T) {
	tests := []struct {
		name    string
		charge  bool
		reason  string
		wantErr string
	}{
		{"allowance code ok", false, "95", ""},
		{"allowance symbol ok", false, "discount", ""},
		{"charge code ok", true, "FC", ""},
		{"charge symbol ok", true, "freight", ""},
		{"charge code rejected as allowance", false, "FC", "is not a known allowance reason"},
		{"allowance code rejected as charge", true, "95", "is not a known charge reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validDocumentAC()
			input["charge"] = tt.charge
			input["reason"] = tt.reason

			_, errs := DocumentAllowanceCharge(input)
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}

func TestAllowanceChargeAmountChecks(t *testing.T) {
	input := validDocumentAC()
	input["amount"] = "-5.00"
	_, errs := DocumentAllowanceCharge(input)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "amount: must be a non-negative decimal string")

	input = validDocumentAC()
	delete(input, "amount")
	_, errs = DocumentAllowanceCharge(input)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "amount: is required")

	input = validDocumentAC()
	input["percent"] = -1.0
	_, errs = DocumentAllowanceCharge(input)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "percent: must not be negative")
}

func TestAllowanceChargeCamelCaseKeys(t *testing.T) {
	ac, errs := DocumentAllowanceCharge(map[string]interface{}{
		"charge":     true,
		"amount":     "3.00",
		"reasonText": "Handling",
		"baseAmount": "100.00",
		"taxCategory": map[string]interface{}{
			"id":      "standard_rate",
			"percent": 25.0,
		},
	})
	require.Empty(t, errs)
	assert.Equal(t, "Handling", ac.ReasonText)
	assert.Equal(t, "100.00", ac.BaseAmount)
}

func TestDocumentAllowanceChargesIndexing(t *testing.T) {
	bad := validDocumentAC()
	delete(bad, "amount")

	_, errs := DocumentAllowanceCharges([]map[string]interface{}{
		validDocumentAC(),
		bad,
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "allowance_charge_2: amount: is required")
}

func TestDocumentAllowanceChargesAllValid(t *testing.T) {
	out, errs := DocumentAllowanceCharges([]map[string]interface{}{
		validDocumentAC(),
		validDocumentAC(),
	})
	require.Empty(t, errs)
	assert.Len(t, out, 2)
}
