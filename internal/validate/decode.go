package validate

import (
	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/numeric"
	"github.com/rezonia/eracun/internal/registry"
)

// decode converts a key-normalized loose parameter map into the typed
// model, collecting type/shape errors into a tree that mirrors the input.
// Enumerated values are mapped to registry symbols when recognized and
// kept verbatim otherwise so the semantic validator can report them.
func decode(m map[string]interface{}) (*model.Invoice, *model.Errors) {
	errs := model.NewErrors()
	inv := &model.Invoice{}

	inv.ID = looseString(m, "id", errs)
	inv.DueDate = looseString(m, "due_date", errs)
	inv.DeliveryDate = looseString(m, "delivery_date", errs)
	inv.CashAccounting = looseBool(m, "cash_accounting", errs)

	inv.Currency = symbolOrRaw(registry.Currencies, looseString(m, "currency", errs))
	inv.Process = symbolOrRaw(registry.Processes, looseString(m, "process", errs))
	inv.Type = symbolOrRaw(registry.InvoiceTypes, looseString(m, "type", errs))

	// Defaults for the three symbols the profile fixes.
	if inv.Currency == "" {
		inv.Currency = registry.Currencies.Default()
	}
	if inv.Process == "" {
		inv.Process = registry.Processes.Default()
	}
	if inv.Type == "" {
		inv.Type = registry.InvoiceTypes.Default()
	}

	if raw, ok := m["issue_date"]; ok {
		if t, ok := parseIssueDateTime(raw); ok {
			inv.IssueDate = t
			inv.IssueTime = t
		} else {
			errs.AddMessage("issue_date", "must be a date, an RFC 3339 timestamp or a naive timestamp")
		}
	}

	if sub, subErrs, ok := looseMap(m, "supplier"); ok {
		party, partyErrs := decodeParty(sub)
		inv.Supplier = party
		errs.Add("supplier", partyErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "customer"); ok {
		party, partyErrs := decodeParty(sub)
		inv.Customer = party
		errs.Add("customer", partyErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "payment"); ok {
		payment, payErrs := decodePayment(sub)
		inv.Payment = payment
		errs.Add("payment", payErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "tax"); ok {
		tax, taxErrs := decodeTaxTotal(sub)
		inv.Tax = tax
		errs.Add("tax", taxErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "totals"); ok {
		totals, totalsErrs := decodeMonetaryTotal(sub)
		inv.Totals = totals
		errs.Add("totals", totalsErrs)
	} else {
		errs.Merge(subErrs)
	}

	if items, listErrs, ok := looseList(m, "lines"); ok {
		for i, item := range items {
			lineMap, ok := item.(map[string]interface{})
			if !ok {
				errs.AddIndexed("line", i+1, model.Leaf("must be a nested structure"))
				continue
			}
			line, lineErrs := decodeLine(lineMap)
			inv.Lines = append(inv.Lines, line)
			errs.AddIndexed("line", i+1, lineErrs)
		}
	} else {
		errs.Merge(listErrs)
	}

	if items, listErrs, ok := looseList(m, "notes"); ok {
		for i, item := range items {
			note, ok := item.(string)
			if !ok {
				errs.AddIndexed("note", i+1, model.Leaf("must be a string"))
				continue
			}
			inv.Notes = append(inv.Notes, note)
		}
	} else {
		errs.Merge(listErrs)
	}

	if items, listErrs, ok := looseList(m, "attachments"); ok {
		for i, item := range items {
			attMap, ok := item.(map[string]interface{})
			if !ok {
				errs.AddIndexed("attachment", i+1, model.Leaf("must be a nested structure"))
				continue
			}
			att, attErrs := decodeAttachment(attMap)
			inv.Attachments = append(inv.Attachments, att)
			errs.AddIndexed("attachment", i+1, attErrs)
		}
	} else {
		errs.Merge(listErrs)
	}

	if items, listErrs, ok := looseList(m, "allowance_charges"); ok {
		for i, item := range items {
			acMap, ok := item.(map[string]interface{})
			if !ok {
				errs.AddIndexed("allowance_charge", i+1, model.Leaf("must be a nested structure"))
				continue
			}
			ac, acErrs := decodeAllowanceCharge(acMap, true)
			inv.AllowanceCharges = append(inv.AllowanceCharges, ac)
			errs.AddIndexed("allowance_charge", i+1, acErrs)
		}
	} else {
		errs.Merge(listErrs)
	}

	if sub, subErrs, ok := looseMap(m, "billing_reference"); ok {
		brErrs := model.NewErrors()
		inv.BillingReference = &model.BillingReference{
			ID:        looseString(sub, "id", brErrs),
			IssueDate: looseString(sub, "issue_date", brErrs),
		}
		errs.Add("billing_reference", brErrs)
	} else {
		errs.Merge(subErrs)
	}

	return inv, errs
}

func decodeParty(m map[string]interface{}) (model.Party, *model.Errors) {
	errs := model.NewErrors()
	party := model.Party{
		OIB:  looseString(m, "oib", errs),
		Name: looseString(m, "name", errs),
	}

	if sub, subErrs, ok := looseMap(m, "address"); ok {
		addrErrs := model.NewErrors()
		party.Address = model.Address{
			Street:     looseString(sub, "street", addrErrs),
			City:       looseString(sub, "city", addrErrs),
			PostalCode: looseString(sub, "postal_code", addrErrs),
			Country:    looseString(sub, "country", addrErrs),
		}
		errs.Add("address", addrErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "tax_scheme"); ok {
		taxErrs := model.NewErrors()
		party.Tax = model.TaxScheme{
			CompanyID: looseString(sub, "company_id", taxErrs),
			Scheme:    symbolOrRaw(registry.TaxSchemes, looseString(sub, "scheme", taxErrs)),
		}
		if party.Tax.Scheme == "" {
			party.Tax.Scheme = registry.TaxSchemes.Default()
		}
		errs.Add("tax_scheme", taxErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "contact"); ok {
		contactErrs := model.NewErrors()
		party.Contact = &model.Contact{
			Name:  looseString(sub, "name", contactErrs),
			Email: looseString(sub, "email", contactErrs),
			Phone: looseString(sub, "phone", contactErrs),
		}
		errs.Add("contact", contactErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "operator"); ok {
		opErrs := model.NewErrors()
		party.Operator = &model.Operator{
			ID:   looseString(sub, "id", opErrs),
			Name: looseString(sub, "name", opErrs),
		}
		errs.Add("operator", opErrs)
	} else {
		errs.Merge(subErrs)
	}

	return party, errs
}

func decodePayment(m map[string]interface{}) (*model.PaymentMeans, *model.Errors) {
	errs := model.NewErrors()
	payment := &model.PaymentMeans{
		Means:     symbolOrRaw(registry.PaymentMeans, looseString(m, "means", errs)),
		IBAN:      looseString(m, "iban", errs),
		PaymentID: looseString(m, "payment_id", errs),
	}
	if payment.Means == "" {
		payment.Means = registry.PaymentMeans.Default()
	}
	return payment, errs
}

func decodeTaxTotal(m map[string]interface{}) (model.TaxTotal, *model.Errors) {
	errs := model.NewErrors()
	tax := model.TaxTotal{
		Amount: looseString(m, "amount", errs),
	}

	if items, listErrs, ok := looseList(m, "subtotals"); ok {
		for i, item := range items {
			subMap, ok := item.(map[string]interface{})
			if !ok {
				errs.AddIndexed("subtotal", i+1, model.Leaf("must be a nested structure"))
				continue
			}
			subErrs := model.NewErrors()
			subtotal := model.TaxSubtotal{
				TaxableAmount: looseString(subMap, "taxable_amount", subErrs),
				TaxAmount:     looseString(subMap, "tax_amount", subErrs),
			}
			if catMap, catErrs, ok := looseMap(subMap, "category"); ok {
				cat, decErrs := decodeTaxCategory(catMap)
				subtotal.Category = cat
				subErrs.Add("category", decErrs)
			} else {
				subErrs.Merge(catErrs)
			}
			tax.Subtotals = append(tax.Subtotals, subtotal)
			errs.AddIndexed("subtotal", i+1, subErrs)
		}
	} else {
		errs.Merge(listErrs)
	}

	return tax, errs
}

func decodeTaxCategory(m map[string]interface{}) (model.TaxCategory, *model.Errors) {
	errs := model.NewErrors()
	cat := model.TaxCategory{
		ID:              symbolOrRaw(registry.TaxCategories, looseString(m, "id", errs)),
		Scheme:          symbolOrRaw(registry.TaxSchemes, looseString(m, "scheme", errs)),
		Name:            looseString(m, "name", errs),
		ExemptionReason: looseString(m, "exemption_reason", errs),
	}
	if code := looseString(m, "exemption_reason_code", errs); code != "" {
		cat.ExemptionReasonCode = symbolOrRaw(registry.ExemptionReasons, code)
	}
	if cat.Scheme == "" {
		cat.Scheme = registry.TaxSchemes.Default()
	}
	cat.Percent = looseNumber(m, "percent", errs)
	return cat, errs
}

func decodeMonetaryTotal(m map[string]interface{}) (model.MonetaryTotal, *model.Errors) {
	errs := model.NewErrors()
	totals := model.MonetaryTotal{
		LineExtension: looseString(m, "line_extension", errs),
		TaxExclusive:  looseString(m, "tax_exclusive", errs),
		TaxInclusive:  looseString(m, "tax_inclusive", errs),
		Payable:       looseString(m, "payable", errs),
	}
	return totals, errs
}

func decodeLine(m map[string]interface{}) (model.Line, *model.Errors) {
	errs := model.NewErrors()
	line := model.Line{
		ID:                  looseString(m, "id", errs),
		Quantity:            looseNumber(m, "quantity", errs),
		Unit:                symbolOrRaw(registry.Units, looseString(m, "unit", errs)),
		LineExtensionAmount: looseString(m, "line_extension_amount", errs),
	}
	if line.Unit == "" {
		line.Unit = registry.Units.Default()
	}

	if sub, subErrs, ok := looseMap(m, "item"); ok {
		itemErrs := model.NewErrors()
		item := model.Item{
			Name:           looseString(sub, "name", itemErrs),
			Classification: looseString(sub, "classification", itemErrs),
		}
		if catMap, catErrs, ok := looseMap(sub, "tax_category"); ok {
			cat, decErrs := decodeTaxCategory(catMap)
			item.TaxCategory = cat
			itemErrs.Add("tax_category", decErrs)
		} else {
			itemErrs.Merge(catErrs)
		}
		line.Item = item
		errs.Add("item", itemErrs)
	} else {
		errs.Merge(subErrs)
	}

	if sub, subErrs, ok := looseMap(m, "price"); ok {
		priceErrs := model.NewErrors()
		price := model.Price{
			Amount:   looseString(sub, "amount", priceErrs),
			BaseUnit: symbolOrRaw(registry.Units, looseString(sub, "base_unit", priceErrs)),
		}
		if _, ok := sub["base_quantity"]; ok {
			q := looseNumber(sub, "base_quantity", priceErrs)
			price.BaseQuantity = &q
		}
		line.Price = price
		errs.Add("price", priceErrs)
	} else {
		errs.Merge(subErrs)
	}

	if items, listErrs, ok := looseList(m, "allowance_charges"); ok {
		for i, item := range items {
			acMap, ok := item.(map[string]interface{})
			if !ok {
				errs.AddIndexed("allowance_charge", i+1, model.Leaf("must be a nested structure"))
				continue
			}
			ac, acErrs := decodeAllowanceCharge(acMap, false)
			line.AllowanceCharges = append(line.AllowanceCharges, ac)
			errs.AddIndexed("allowance_charge", i+1, acErrs)
		}
	} else {
		errs.Merge(listErrs)
	}

	return line, errs
}

// decodeAllowanceCharge converts one loose allowance/charge record. A tax
// category supplied on a line-level entry is discarded without error,
// matching the documented legacy behavior; rejecting it instead would be
// the stricter alternative.
func decodeAllowanceCharge(m map[string]interface{}, documentLevel bool) (model.AllowanceCharge, *model.Errors) {
	errs := model.NewErrors()
	ac := model.AllowanceCharge{
		Charge:     looseBool(m, "charge", errs),
		Amount:     looseString(m, "amount", errs),
		ReasonText: looseString(m, "reason_text", errs),
		BaseAmount: looseString(m, "base_amount", errs),
	}

	reason := looseString(m, "reason", errs)
	if reason != "" {
		table := registry.AllowanceReasons
		if ac.Charge {
			table = registry.ChargeReasons
		}
		ac.Reason = symbolOrRaw(table, reason)
	}

	if _, ok := m["percent"]; ok {
		p := looseNumber(m, "percent", errs)
		ac.Percent = &p
	}

	if documentLevel {
		if catMap, catErrs, ok := looseMap(m, "tax_category"); ok {
			cat, decErrs := decodeTaxCategory(catMap)
			ac.TaxCategory = &cat
			errs.Add("tax_category", decErrs)
		} else {
			errs.Merge(catErrs)
		}
	}

	return ac, errs
}

func decodeAttachment(m map[string]interface{}) (model.Attachment, *model.Errors) {
	errs := model.NewErrors()
	att := model.Attachment{
		ID:       looseString(m, "id", errs),
		Filename: looseString(m, "filename", errs),
		Data:     looseString(m, "data", errs),
	}
	if mime := looseString(m, "mime_type", errs); mime != "" {
		if code, ok := registry.MimeTypes.Code(mime); ok {
			att.MimeType = code
		} else {
			att.MimeType = mime
		}
	}
	return att, errs
}

// Loose accessors. Missing keys yield zero values without error; wrong
// types are reported under the key.

func looseString(m map[string]interface{}, key string, errs *model.Errors) string {
	raw, ok := m[key]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		errs.AddMessage(key, "must be a string")
		return ""
	}
	return s
}

func looseBool(m map[string]interface{}, key string, errs *model.Errors) bool {
	raw, ok := m[key]
	if !ok || raw == nil {
		return false
	}
	b, ok := raw.(bool)
	if !ok {
		errs.AddMessage(key, "must be a boolean")
		return false
	}
	return b
}

// looseNumber accepts float64/int (JSON numbers) and decimal strings.
func looseNumber(m map[string]interface{}, key string, errs *model.Errors) float64 {
	raw, ok := m[key]
	if !ok || raw == nil {
		return 0
	}
	switch val := raw.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		if f, ok := numeric.ParseFloat(val); ok {
			return f
		}
	}
	errs.AddMessage(key, "must be a number")
	return 0
}

func looseMap(m map[string]interface{}, key string) (map[string]interface{}, *model.Errors, bool) {
	errs := model.NewErrors()
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, errs, false
	}
	sub, ok := raw.(map[string]interface{})
	if !ok {
		errs.AddMessage(key, "must be a nested structure")
		return nil, errs, false
	}
	return sub, errs, true
}

func looseList(m map[string]interface{}, key string) ([]interface{}, *model.Errors, bool) {
	errs := model.NewErrors()
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, errs, false
	}
	items, ok := raw.([]interface{})
	if !ok {
		errs.AddMessage(key, "must be a list")
		return nil, errs, false
	}
	return items, errs, true
}

func symbolOrRaw(table *registry.Table, v string) string {
	if v == "" {
		return ""
	}
	if s, ok := table.Symbol(v); ok {
		return s
	}
	return v
}
