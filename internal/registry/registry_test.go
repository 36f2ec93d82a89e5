package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/eracun/internal/registry"
)

func allTables() map[string]*registry.Table {
	return map[string]*registry.Table{
		"invoice_type":     registry.InvoiceTypes,
		"tax_category":     registry.TaxCategories,
		"tax_scheme":       registry.TaxSchemes,
		"unit":             registry.Units,
		"process":          registry.Processes,
		"currency":         registry.Currencies,
		"allowance_reason": registry.AllowanceReasons,
		"charge_reason":    registry.ChargeReasons,
		"exemption_reason": registry.ExemptionReasons,
		"mime_type":        registry.MimeTypes,
		"payment_means":    registry.PaymentMeans,
	}
}

func TestTables_Bijection(t *testing.T) {
	for name, table := range allTables() {
		t.Run(name, func(t *testing.T) {
			for _, symbol := range table.Values() {
				code, ok := table.Code(symbol)
				require.True(t, ok, "symbol %s should map to a code", symbol)

				back, ok := table.Symbol(code)
				require.True(t, ok, "code %s should map back to a symbol", code)
				assert.Equal(t, symbol, back)
			}
		})
	}
}

func TestTables_ValidAcceptsSymbolAndCode(t *testing.T) {
	assert.True(t, registry.TaxCategories.Valid("standard_rate"))
	assert.True(t, registry.TaxCategories.Valid("S"))
	assert.False(t, registry.TaxCategories.Valid("platinum_rate"))
}

func TestTable_CodeAcceptsEitherRepresentation(t *testing.T) {
	code, ok := registry.InvoiceTypes.Code("credit_note")
	require.True(t, ok)
	assert.Equal(t, "381", code)

	code, ok = registry.InvoiceTypes.Code("381")
	require.True(t, ok)
	assert.Equal(t, "381", code)

	_, ok = registry.InvoiceTypes.Code("receipt")
	assert.False(t, ok)
}

func TestTable_SymbolOrPassthrough(t *testing.T) {
	assert.Equal(t, "kilogram", registry.Units.SymbolOrPassthrough("KGM"))
	assert.Equal(t, "XYZ99", registry.Units.SymbolOrPassthrough("XYZ99"))
}

func TestTables_Defaults(t *testing.T) {
	assert.Equal(t, "invoice", registry.InvoiceTypes.Default())
	assert.Equal(t, "standard_rate", registry.TaxCategories.Default())
	assert.Equal(t, "p1", registry.Processes.Default())
	assert.Equal(t, "eur", registry.Currencies.Default())
	assert.Equal(t, "piece", registry.Units.Default())

	// Reason tables have no meaningful fallback.
	assert.Empty(t, registry.AllowanceReasons.Default())
	assert.Empty(t, registry.ChargeReasons.Default())
}

func TestReasonRegistries_DisjointCodeSpaces(t *testing.T) {
	for _, symbol := range registry.AllowanceReasons.Values() {
		code, _ := registry.AllowanceReasons.Code(symbol)
		assert.False(t, registry.ChargeReasons.Valid(code),
			"allowance code %s must not be a charge code", code)
	}
	for _, symbol := range registry.ChargeReasons.Values() {
		code, _ := registry.ChargeReasons.Code(symbol)
		assert.False(t, registry.AllowanceReasons.Valid(code),
			"charge code %s must not be an allowance code", code)
	}
}

func TestExemptClassCategory(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"exempt", true},
		{"E", true},
		{"reverse_charge", true},
		{"AE", true},
		{"out_of_scope", true},
		{"O", true},
		{"standard_rate", false},
		{"S", false},
		{"zero_rated", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, registry.ExemptClassCategory(tt.value), tt.value)
	}
}

func TestCurrencies_SingleSupportedValue(t *testing.T) {
	assert.Equal(t, []string{"eur"}, registry.Currencies.Values())
	assert.True(t, registry.Currencies.Valid("EUR"))
	assert.False(t, registry.Currencies.Valid("USD"))
}

func TestTypesRequiringBillingReference(t *testing.T) {
	assert.True(t, registry.TypesRequiringBillingReference["credit_note"])
	assert.True(t, registry.TypesRequiringBillingReference["corrective_invoice"])
	assert.True(t, registry.TypesRequiringBillingReference["debit_note"])
	assert.False(t, registry.TypesRequiringBillingReference["invoice"])
}
