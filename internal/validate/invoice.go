package validate

import (
	"fmt"
	"strings"

	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/registry"
)

// validateInvoice runs the per-section semantic checks over the typed
// model and returns the aggregated error tree plus warning-level notices.
// All sections are checked so the caller sees every problem in one pass.
func validateInvoice(inv *model.Invoice) (*model.Errors, []string) {
	errs := model.NewErrors()
	var warnings []string

	if inv.ID == "" {
		errs.AddMessage("id", "is required")
	}
	if inv.IssueDate.IsZero() {
		errs.AddMessage("issue_date", "is required")
	}
	if inv.DueDate != "" && !isDate(inv.DueDate) {
		errs.AddMessage("due_date", "must be a date in YYYY-MM-DD format")
	}
	if inv.DeliveryDate != "" && !isDate(inv.DeliveryDate) {
		errs.AddMessage("delivery_date", "must be a date in YYYY-MM-DD format")
	}

	if !registry.Currencies.Valid(inv.Currency) {
		errs.AddMessage("currency", "must be EUR, the only supported currency")
	}
	if !registry.InvoiceTypes.Valid(inv.Type) {
		errs.AddMessage("type", "must be one of: %s", strings.Join(registry.InvoiceTypes.Values(), ", "))
	}
	if !registry.Processes.Valid(inv.Process) {
		errs.AddMessage("process", "must be one of: %s", strings.Join(registry.Processes.Values(), ", "))
	}

	errs.Add("supplier", validateParty(&inv.Supplier, true))
	errs.Add("customer", validateParty(&inv.Customer, false))

	if inv.Payment != nil {
		errs.Add("payment", validatePayment(inv.Payment))
	}

	taxErrs, taxWarnings := validateTaxTotal(&inv.Tax)
	errs.Add("tax", taxErrs)
	warnings = append(warnings, taxWarnings...)

	errs.Add("totals", validateMonetaryTotal(&inv.Totals))

	if len(inv.Lines) == 0 {
		errs.AddMessage("lines", "at least one invoice line is required")
	}
	for i := range inv.Lines {
		lineErrs, lineWarnings := validateLine(&inv.Lines[i])
		errs.AddIndexed("line", i+1, lineErrs)
		for _, w := range lineWarnings {
			warnings = append(warnings, fmt.Sprintf("line_%d: %s", i+1, w))
		}
	}

	for i := range inv.AllowanceCharges {
		acErrs, acWarnings := validateAllowanceCharge(&inv.AllowanceCharges[i], true)
		errs.AddIndexed("allowance_charge", i+1, acErrs)
		for _, w := range acWarnings {
			warnings = append(warnings, fmt.Sprintf("allowance_charge_%d: %s", i+1, w))
		}
	}

	for i := range inv.Attachments {
		errs.AddIndexed("attachment", i+1, validateAttachment(&inv.Attachments[i]))
	}

	// Credit notes, debit notes and corrective invoices must point at the
	// document they amend. Checked here unconditionally, not behind a
	// capability query.
	if inv.RequiresBillingReference() {
		if inv.BillingReference == nil || inv.BillingReference.ID == "" {
			errs.AddMessage("billing_reference", "is required for type %s", inv.Type)
		}
	}
	if inv.BillingReference != nil && inv.BillingReference.IssueDate != "" && !isDate(inv.BillingReference.IssueDate) {
		br := model.NewErrors()
		br.AddMessage("issue_date", "must be a date in YYYY-MM-DD format")
		errs.Add("billing_reference", br)
	}

	return errs, warnings
}

func validateParty(p *model.Party, supplier bool) *model.Errors {
	errs := model.NewErrors()

	if p.OIB == "" {
		errs.AddMessage("oib", "is required")
	} else if !isOIB(p.OIB) {
		errs.AddMessage("oib", "must be exactly 11 digits")
	}
	if p.Name == "" {
		errs.AddMessage("name", "is required")
	}

	addrErrs := model.NewErrors()
	if p.Address.Street == "" {
		addrErrs.AddMessage("street", "is required")
	}
	if p.Address.City == "" {
		addrErrs.AddMessage("city", "is required")
	}
	if p.Address.PostalCode == "" {
		addrErrs.AddMessage("postal_code", "is required")
	}
	if p.Address.Country == "" {
		addrErrs.AddMessage("country", "is required")
	} else if !isCountryCode(p.Address.Country) {
		addrErrs.AddMessage("country", "must be a 2-letter uppercase ISO country code")
	}
	errs.Add("address", addrErrs)

	taxErrs := model.NewErrors()
	if p.Tax.CompanyID == "" {
		taxErrs.AddMessage("company_id", "is required")
	}
	if !registry.TaxSchemes.Valid(p.Tax.Scheme) {
		taxErrs.AddMessage("scheme", "must be one of: %s", strings.Join(registry.TaxSchemes.Values(), ", "))
	}
	errs.Add("tax_scheme", taxErrs)

	if p.Contact != nil && p.Contact.Email != "" && !isEmail(p.Contact.Email) {
		contactErrs := model.NewErrors()
		contactErrs.AddMessage("email", "must be a valid email address")
		errs.Add("contact", contactErrs)
	}

	// The issuing operator is mandatory on the supplier regardless of any
	// other contact data.
	if supplier {
		opErrs := model.NewErrors()
		if p.Operator == nil {
			errs.AddMessage("operator", "is required")
		} else {
			if p.Operator.ID == "" {
				opErrs.AddMessage("id", "is required")
			} else if !isOIB(p.Operator.ID) {
				opErrs.AddMessage("id", "must be exactly 11 digits")
			}
			if p.Operator.Name == "" {
				opErrs.AddMessage("name", "is required")
			}
			errs.Add("operator", opErrs)
		}
	}

	return errs
}

func validatePayment(p *model.PaymentMeans) *model.Errors {
	errs := model.NewErrors()
	if !registry.PaymentMeans.Valid(p.Means) {
		errs.AddMessage("means", "must be one of: %s", strings.Join(registry.PaymentMeans.Values(), ", "))
	}
	return errs
}

func validateTaxTotal(t *model.TaxTotal) (*model.Errors, []string) {
	errs := model.NewErrors()
	var warnings []string

	if t.Amount == "" {
		errs.AddMessage("amount", "is required")
	} else if !isAmount(t.Amount) {
		errs.AddMessage("amount", "must be a non-negative decimal string")
	}

	if len(t.Subtotals) == 0 {
		errs.AddMessage("subtotals", "at least one tax subtotal is required")
	}
	for i := range t.Subtotals {
		sub := &t.Subtotals[i]
		subErrs := model.NewErrors()
		if !isAmount(sub.TaxableAmount) {
			subErrs.AddMessage("taxable_amount", "must be a non-negative decimal string")
		}
		if !isAmount(sub.TaxAmount) {
			subErrs.AddMessage("tax_amount", "must be a non-negative decimal string")
		}
		catErrs, catWarnings := validateTaxCategory(&sub.Category)
		subErrs.Add("category", catErrs)
		errs.AddIndexed("subtotal", i+1, subErrs)
		for _, w := range catWarnings {
			warnings = append(warnings, fmt.Sprintf("subtotal_%d: %s", i+1, w))
		}
	}

	return errs, warnings
}

// validateTaxCategory checks symbol, percent range and scheme. A missing
// exemption reason on an exempt-class category is a warning, not an
// error, in every codepath.
func validateTaxCategory(c *model.TaxCategory) (*model.Errors, []string) {
	errs := model.NewErrors()
	var warnings []string

	if c.ID == "" {
		errs.AddMessage("id", "is required")
	} else if !registry.TaxCategories.Valid(c.ID) {
		errs.AddMessage("id", "must be one of: %s", strings.Join(registry.TaxCategories.Values(), ", "))
	}
	if !isPercent(c.Percent) {
		errs.AddMessage("percent", "must be between 0 and 100")
	}
	if !registry.TaxSchemes.Valid(c.Scheme) {
		errs.AddMessage("scheme", "must be one of: %s", strings.Join(registry.TaxSchemes.Values(), ", "))
	}
	if c.ExemptionReasonCode != "" && !registry.ExemptionReasons.Valid(c.ExemptionReasonCode) {
		errs.AddMessage("exemption_reason_code", "is not a known exemption reason code")
	}
	if c.ExemptClass() && c.ExemptionReason == "" && c.ExemptionReasonCode == "" {
		warnings = append(warnings, fmt.Sprintf("tax category %s should carry an exemption reason", c.ID))
	}

	return errs, warnings
}

func validateMonetaryTotal(t *model.MonetaryTotal) *model.Errors {
	errs := model.NewErrors()
	fields := []struct {
		name  string
		value string
	}{
		{"line_extension", t.LineExtension},
		{"tax_exclusive", t.TaxExclusive},
		{"tax_inclusive", t.TaxInclusive},
		{"payable", t.Payable},
	}
	for _, f := range fields {
		if f.value == "" {
			errs.AddMessage(f.name, "is required")
		} else if !isAmount(f.value) {
			errs.AddMessage(f.name, "must be a non-negative decimal string")
		}
	}
	return errs
}

func validateLine(l *model.Line) (*model.Errors, []string) {
	errs := model.NewErrors()
	var warnings []string

	if l.ID == "" {
		errs.AddMessage("id", "is required")
	}
	if l.Quantity <= 0 {
		errs.AddMessage("quantity", "must be greater than zero")
	}
	if !registry.Units.Valid(l.Unit) {
		errs.AddMessage("unit", "is not a known unit of measure")
	}
	if l.LineExtensionAmount == "" {
		errs.AddMessage("line_extension_amount", "is required")
	} else if !isAmount(l.LineExtensionAmount) {
		errs.AddMessage("line_extension_amount", "must be a non-negative decimal string")
	}

	itemErrs := model.NewErrors()
	if l.Item.Name == "" {
		itemErrs.AddMessage("name", "is required")
	}
	if l.Item.Classification == "" {
		itemErrs.AddMessage("classification", "is required")
	}
	catErrs, catWarnings := validateTaxCategory(&l.Item.TaxCategory)
	itemErrs.Add("tax_category", catErrs)
	warnings = append(warnings, catWarnings...)
	errs.Add("item", itemErrs)

	priceErrs := model.NewErrors()
	if l.Price.Amount == "" {
		priceErrs.AddMessage("amount", "is required")
	} else if !isAmount(l.Price.Amount) {
		priceErrs.AddMessage("amount", "must be a non-negative decimal string")
	}
	if l.Price.BaseQuantity != nil && *l.Price.BaseQuantity <= 0 {
		priceErrs.AddMessage("base_quantity", "must be greater than zero")
	}
	errs.Add("price", priceErrs)

	for i := range l.AllowanceCharges {
		acErrs, acWarnings := validateAllowanceCharge(&l.AllowanceCharges[i], false)
		errs.AddIndexed("allowance_charge", i+1, acErrs)
		warnings = append(warnings, acWarnings...)
	}

	return errs, warnings
}

func validateAttachment(a *model.Attachment) *model.Errors {
	errs := model.NewErrors()
	if a.ID == "" {
		errs.AddMessage("id", "is required")
	}
	if a.Filename == "" {
		errs.AddMessage("filename", "is required")
	}
	if a.MimeType == "" {
		errs.AddMessage("mime_type", "is required")
	} else if !registry.MimeTypes.Valid(a.MimeType) {
		errs.AddMessage("mime_type", "is not an allowed MIME type")
	}
	if a.Data == "" {
		errs.AddMessage("data", "is required")
	} else if !isBase64(a.Data) {
		errs.AddMessage("data", "must be base64-encoded")
	}
	return errs
}
