package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() map[string]interface{} {
	return map[string]interface{}{
		"id":         "INV-2025-0001",
		"issue_date": "2025-05-01T12:00:00",
		"due_date":   "2025-05-15",
		"supplier": map[string]interface{}{
			"oib":  "12345678901",
			"name": "Prodavatelj d.o.o.",
			"address": map[string]interface{}{
				"street":      "Ilica 1",
				"city":        "Zagreb",
				"postal_code": "10000",
				"country":     "HR",
			},
			"tax_scheme": map[string]interface{}{
				"company_id": "HR12345678901",
				"scheme":     "vat",
			},
			"operator": map[string]interface{}{
				"id":   "98765432109",
				"name": "Operator1",
			},
		},
		"customer": map[string]interface{}{
			"oib":  "10987654321",
			"name": "Kupac d.o.o.",
			"address": map[string]interface{}{
				"street":      "Vukovarska 10",
				"city":        "Split",
				"postal_code": "21000",
				"country":     "HR",
			},
			"tax_scheme": map[string]interface{}{
				"company_id": "HR10987654321",
			},
		},
		"tax": map[string]interface{}{
			"amount": "25.00",
			"subtotals": []interface{}{
				map[string]interface{}{
					"taxable_amount": "100.00",
					"tax_amount":     "25.00",
					"category": map[string]interface{}{
						"id":      "standard_rate",
						"percent": 25.0,
					},
				},
			},
		},
		"totals": map[string]interface{}{
			"line_extension": "100.00",
			"tax_exclusive":  "100.00",
			"tax_inclusive":  "125.00",
			"payable":        "125.00",
		},
		"lines": []interface{}{
			map[string]interface{}{
				"id":                    "1",
				"quantity":              2.0,
				"unit":                  "piece",
				"line_extension_amount": "100.00",
				"item": map[string]interface{}{
					"name":           "Widget",
					"classification": "48000000-8",
					"tax_category": map[string]interface{}{
						"id":      "standard_rate",
						"percent": 25.0,
					},
				},
				"price": map[string]interface{}{
					"amount": "50.00",
				},
			},
		},
	}
}

func TestParamsValid(t *testing.T) {
	result := Params(validParams())
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	require.NotNil(t, result.Invoice)
	assert.Empty(t, result.Warnings)

	inv := result.Invoice
	assert.Equal(t, "INV-2025-0001", inv.ID)
	assert.Equal(t, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), inv.IssueDate)
	assert.Equal(t, "eur", inv.Currency)
	assert.Equal(t, "invoice", inv.Type)
	assert.Equal(t, "p1", inv.Process)
	require.NotNil(t, inv.Supplier.Operator)
	assert.Equal(t, "Operator1", inv.Supplier.Operator.Name)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "piece", inv.Lines[0].Unit)
}

func TestParamsDefaults(t *testing.T) {
	params := validParams()
	// currency, process and type are omitted entirely
	result := Params(params)
	require.True(t, result.Valid())
	assert.Equal(t, "eur", result.Invoice.Currency)
	assert.Equal(t, "p1", result.Invoice.Process)
	assert.Equal(t, "invoice", result.Invoice.Type)
	assert.Equal(t, "vat", result.Invoice.Customer.Tax.Scheme)
}

func TestParamsCamelCaseKeys(t *testing.T) {
	result := Params(map[string]interface{}{
		"id":        "INV-1",
		"issueDate": "2025-05-01",
		"dueDate":   "2025-05-15",
		"supplier":  validParams()["supplier"],
		"customer":  validParams()["customer"],
		"tax":       validParams()["tax"],
		"totals": map[string]interface{}{
			"lineExtension": "100.00",
			"taxExclusive":  "100.00",
			"taxInclusive":  "125.00",
			"payable":       "125.00",
		},
		"lines": validParams()["lines"],
	})
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	assert.Equal(t, "2025-05-15", result.Invoice.DueDate)
}

func TestParamsIssueDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		ok    bool
	}{
		{"date only", "2025-05-01", true},
		{"naive timestamp", "2025-05-01T12:00:00", true},
		{"space separated", "2025-05-01 12:00:00", true},
		{"rfc3339", "2025-05-01T12:00:00Z", true},
		{"time value", time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), true},
		{"garbage", "May 1st", false},
		{"number", 20250501.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			params["issue_date"] = tt.value
			result := Params(params)
			if tt.ok {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
			} else {
				require.False(t, result.Valid())
				assert.Contains(t, result.Errors.Flatten(),
					"issue_date: must be a date, an RFC 3339 timestamp or a naive timestamp")
			}
		})
	}
}

func TestParamsFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantErr string
	}{
		{
			"missing id",
			func(p map[string]interface{}) { delete(p, "id") },
			"id: is required",
		},
		{
			"missing issue date",
			func(p map[string]interface{}) { delete(p, "issue_date") },
			"issue_date: is required",
		},
		{
			"bad due date",
			func(p map[string]interface{}) { p["due_date"] = "15.05.2025" },
			"due_date: must be a date in YYYY-MM-DD format",
		},
		{
			"unsupported currency",
			func(p map[string]interface{}) { p["currency"] = "usd" },
			"currency: must be EUR, the only supported currency",
		},
		{
			"unknown type",
			func(p map[string]interface{}) { p["type"] = "proforma" },
			"type: must be one of: invoice, credit_note, debit_note, corrective_invoice, prepayment_invoice, self_billed_invoice",
		},
		{
			"short oib",
			func(p map[string]interface{}) {
				p["supplier"].(map[string]interface{})["oib"] = "123"
			},
			"supplier.oib: must be exactly 11 digits",
		},
		{
			"non-numeric oib",
			func(p map[string]interface{}) {
				p["customer"].(map[string]interface{})["oib"] = "1234567890a"
			},
			"customer.oib: must be exactly 11 digits",
		},
		{
			"missing street",
			func(p map[string]interface{}) {
				addr := p["supplier"].(map[string]interface{})["address"].(map[string]interface{})
				delete(addr, "street")
			},
			"supplier.address.street: is required",
		},
		{
			"lowercase country",
			func(p map[string]interface{}) {
				addr := p["customer"].(map[string]interface{})["address"].(map[string]interface{})
				addr["country"] = "hr"
			},
			"customer.address.country: must be a 2-letter uppercase ISO country code",
		},
		{
			"missing operator",
			func(p map[string]interface{}) {
				delete(p["supplier"].(map[string]interface{}), "operator")
			},
			"supplier.operator: is required",
		},
		{
			"operator id not oib",
			func(p map[string]interface{}) {
				op := p["supplier"].(map[string]interface{})["operator"].(map[string]interface{})
				op["id"] = "x"
			},
			"supplier.operator.id: must be exactly 11 digits",
		},
		{
			"bad contact email",
			func(p map[string]interface{}) {
				p["supplier"].(map[string]interface{})["contact"] = map[string]interface{}{
					"email": "not-an-email",
				}
			},
			"supplier.contact.email: must be a valid email address",
		},
		{
			"no lines",
			func(p map[string]interface{}) { p["lines"] = []interface{}{} },
			"lines: at least one invoice line is required",
		},
		{
			"zero quantity",
			func(p map[string]interface{}) {
				line := p["lines"].([]interface{})[0].(map[string]interface{})
				line["quantity"] = 0.0
			},
			"line_1.quantity: must be greater than zero",
		},
		{
			"unknown unit",
			func(p map[string]interface{}) {
				line := p["lines"].([]interface{})[0].(map[string]interface{})
				line["unit"] = "dozen"
			},
			"line_1.unit: is not a known unit of measure",
		},
		{
			"missing item name",
			func(p map[string]interface{}) {
				item := p["lines"].([]interface{})[0].(map[string]interface{})["item"].(map[string]interface{})
				delete(item, "name")
			},
			"line_1.item.name: is required",
		},
		{
			"negative price",
			func(p map[string]interface{}) {
				price := p["lines"].([]interface{})[0].(map[string]interface{})["price"].(map[string]interface{})
				price["amount"] = "-1.00"
			},
			"line_1.price.amount: must be a non-negative decimal string",
		},
		{
			"zero base quantity",
			func(p map[string]interface{}) {
				price := p["lines"].([]interface{})[0].(map[string]interface{})["price"].(map[string]interface{})
				price["base_quantity"] = 0.0
			},
			"line_1.price.base_quantity: must be greater than zero",
		},
		{
			"missing tax amount",
			func(p map[string]interface{}) {
				delete(p["tax"].(map[string]interface{}), "amount")
			},
			"tax.amount: is required",
		},
		{
			"no subtotals",
			func(p map[string]interface{}) {
				p["tax"].(map[string]interface{})["subtotals"] = []interface{}{}
			},
			"tax.subtotals: at least one tax subtotal is required",
		},
		{
			"bad category percent",
			func(p map[string]interface{}) {
				sub := p["tax"].(map[string]interface{})["subtotals"].([]interface{})[0].(map[string]interface{})
				sub["category"].(map[string]interface{})["percent"] = 120.0
			},
			"tax.subtotal_1.category.percent: must be between 0 and 100",
		},
		{
			"missing payable",
			func(p map[string]interface{}) {
				delete(p["totals"].(map[string]interface{}), "payable")
			},
			"totals.payable: is required",
		},
		{
			"supplier wrong type",
			func(p map[string]interface{}) { p["supplier"] = "not a map" },
			"supplier: must be a nested structure",
		},
		{
			"id wrong type",
			func(p map[string]interface{}) { p["id"] = 42.0 },
			"id: must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(params)
			result := Params(params)
			require.False(t, result.Valid())
			assert.Contains(t, result.Errors.Flatten(), tt.wantErr)
		})
	}
}

func TestParamsBillingReference(t *testing.T) {
	for _, typ := range []string{"credit_note", "debit_note", "corrective_invoice"} {
		t.Run(typ+" without reference", func(t *testing.T) {
			params := validParams()
			params["type"] = typ
			result := Params(params)
			require.False(t, result.Valid())
			assert.Contains(t, result.Errors.Flatten(), "billing_reference: is required for type "+typ)
		})

		t.Run(typ+" with reference", func(t *testing.T) {
			params := validParams()
			params["type"] = typ
			params["billing_reference"] = map[string]interface{}{
				"id":         "INV-2025-0000",
				"issue_date": "2025-04-01",
			}
			result := Params(params)
			assert.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
		})
	}

	t.Run("plain invoice needs no reference", func(t *testing.T) {
		result := Params(validParams())
		assert.True(t, result.Valid())
	})

	t.Run("reference issue date format", func(t *testing.T) {
		params := validParams()
		params["type"] = "credit_note"
		params["billing_reference"] = map[string]interface{}{
			"id":         "INV-2025-0000",
			"issue_date": "01.04.2025",
		}
		result := Params(params)
		require.False(t, result.Valid())
		assert.Contains(t, result.Errors.Flatten(), "billing_reference.issue_date: must be a date in YYYY-MM-DD format")
	})
}

func TestParamsExemptionReasonWarning(t *testing.T) {
	params := validParams()
	sub := params["tax"].(map[string]interface{})["subtotals"].([]interface{})[0].(map[string]interface{})
	sub["category"] = map[string]interface{}{
		"id":      "exempt",
		"percent": 0.0,
	}

	result := Params(params)
	// Warning level only, the parameters stay valid.
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "tax category exempt should carry an exemption reason")
}

func TestParamsExemptionReasonSuppressesWarning(t *testing.T) {
	params := validParams()
	sub := params["tax"].(map[string]interface{})["subtotals"].([]interface{})[0].(map[string]interface{})
	sub["category"] = map[string]interface{}{
		"id":                    "reverse_charge",
		"percent":               0.0,
		"exemption_reason_code": "vatex_eu_ae",
	}

	result := Params(params)
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	assert.Empty(t, result.Warnings)
}

func TestParamsAttachments(t *testing.T) {
	params := validParams()
	params["attachments"] = []interface{}{
		map[string]interface{}{
			"id":        "ATT-1",
			"filename":  "spec.pdf",
			"mime_type": "pdf",
			"data":      "aGVsbG8=",
		},
	}
	result := Params(params)
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	require.Len(t, result.Invoice.Attachments, 1)
	assert.Equal(t, "application/pdf", result.Invoice.Attachments[0].MimeType)

	params = validParams()
	params["attachments"] = []interface{}{
		map[string]interface{}{
			"id":        "ATT-1",
			"filename":  "run.exe",
			"mime_type": "application/x-msdownload",
			"data":      "aGVsbG8=",
		},
	}
	result = Params(params)
	require.False(t, result.Valid())
	assert.Contains(t, result.Errors.Flatten(), "attachment_1.mime_type: is not an allowed MIME type")

	params = validParams()
	params["attachments"] = []interface{}{
		map[string]interface{}{
			"id":        "ATT-1",
			"filename":  "spec.pdf",
			"mime_type": "pdf",
			"data":      "not base64!!!",
		},
	}
	result = Params(params)
	require.False(t, result.Valid())
	assert.Contains(t, result.Errors.Flatten(), "attachment_1.data: must be base64-encoded")
}

func TestParamsDocumentAllowanceCharges(t *testing.T) {
	params := validParams()
	params["allowance_charges"] = []interface{}{
		map[string]interface{}{
			"charge": false,
			"amount": "10.00",
			"reason": "discount",
			"tax_category": map[string]interface{}{
				"id":      "standard_rate",
				"percent": 25.0,
			},
		},
	}
	result := Params(params)
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	require.Len(t, result.Invoice.AllowanceCharges, 1)
	assert.Equal(t, "discount", result.Invoice.AllowanceCharges[0].Reason)

	params = validParams()
	params["allowance_charges"] = []interface{}{
		map[string]interface{}{
			"charge": false,
			"amount": "10.00",
		},
	}
	result = Params(params)
	require.False(t, result.Valid())
	assert.Contains(t, result.Errors.Flatten(),
		"allowance_charge_1.tax_category: is required for document-level allowance/charge")
}

func TestParamsLineAllowanceChargeTaxCategoryStripped(t *testing.T) {
	params := validParams()
	line := params["lines"].([]interface{})[0].(map[string]interface{})
	line["allowance_charges"] = []interface{}{
		map[string]interface{}{
			"charge": false,
			"amount": "5.00",
			"tax_category": map[string]interface{}{
				"id":      "standard_rate",
				"percent": 25.0,
			},
		},
	}
	result := Params(params)
	require.True(t, result.Valid(), "unexpected errors: %v", result.Errors.Flatten())
	require.Len(t, result.Invoice.Lines[0].AllowanceCharges, 1)
	assert.Nil(t, result.Invoice.Lines[0].AllowanceCharges[0].TaxCategory)
}

func TestParamsErrorTreeShape(t *testing.T) {
	params := validParams()
	delete(params, "id")
	delete(params["supplier"].(map[string]interface{}), "oib")

	result := Params(params)
	require.False(t, result.Valid())

	assert.Equal(t, "is required", result.Errors.Get("id").Message())
	supplier := result.Errors.Get("supplier")
	require.NotNil(t, supplier)
	assert.Equal(t, "is required", supplier.Get("oib").Message())
}

func TestInvoiceTypedValidation(t *testing.T) {
	result := Params(validParams())
	require.True(t, result.Valid())

	// Re-validating the decoded model succeeds and keeps the model.
	typed := Invoice(result.Invoice)
	require.True(t, typed.Valid(), "unexpected errors: %v", typed.Errors.Flatten())
	assert.Equal(t, result.Invoice, typed.Invoice)

	// Breaking the model surfaces the same error paths.
	result.Invoice.Supplier.OIB = "123"
	typed = Invoice(result.Invoice)
	require.False(t, typed.Valid())
	assert.Contains(t, typed.Errors.Flatten(), "supplier.oib: must be exactly 11 digits")
}
