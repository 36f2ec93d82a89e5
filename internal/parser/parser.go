// Package parser reconstructs the invoice model from UBL XML text. All
// navigation matches element local names only, so documents using any
// namespace prefixes (or inconsistent ones) parse the same way.
package parser

import (
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/rezonia/eracun/internal/builder"
	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/numeric"
	"github.com/rezonia/eracun/internal/registry"
)

// Parse extracts a best-effort invoice model from XML text. Malformed
// input yields an error result, never a panic; missing optional fields
// stay absent in the model.
func Parse(data []byte) (*model.Invoice, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.NewParseError("xml", "failed to parse document", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, model.NewParseError("xml", "document has no root element", nil)
	}
	if root.Tag != "Invoice" {
		return nil, model.NewParseError("root", "expected an Invoice document, got "+root.Tag, nil)
	}

	inv := &model.Invoice{}

	inv.ID = text(root, "ID")
	inv.DueDate = text(root, "DueDate")
	inv.Type = registry.InvoiceTypes.SymbolOrPassthrough(text(root, "InvoiceTypeCode"))
	inv.Process = registry.Processes.SymbolOrPassthrough(text(root, "ProfileID"))
	inv.Currency = registry.Currencies.SymbolOrPassthrough(text(root, "DocumentCurrencyCode"))

	parseIssueDateTime(root, inv)
	parseExtensions(root, inv)

	notes, operatorName, operatorID := splitNotes(root)
	inv.Notes = notes

	if ref := child(root, "BillingReference"); ref != nil {
		if docRef := child(ref, "InvoiceDocumentReference"); docRef != nil {
			inv.BillingReference = &model.BillingReference{
				ID:        text(docRef, "ID"),
				IssueDate: text(docRef, "IssueDate"),
			}
		}
	}

	for _, ref := range children(root, "AdditionalDocumentReference") {
		if att, ok := parseAttachment(ref); ok {
			inv.Attachments = append(inv.Attachments, att)
		}
	}

	if wrapper := child(root, "AccountingSupplierParty"); wrapper != nil {
		inv.Supplier = parseParty(wrapper)
	}
	if wrapper := child(root, "AccountingCustomerParty"); wrapper != nil {
		inv.Customer = parseParty(wrapper)
	}

	// The operator identity comes from the dedicated contact block when
	// present; the stripped notes are the fallback for documents issued
	// by older generators.
	if inv.Supplier.Operator == nil && (operatorName != "" || operatorID != "") {
		inv.Supplier.Operator = &model.Operator{ID: operatorID, Name: operatorName}
	}

	if delivery := child(root, "Delivery"); delivery != nil {
		inv.DeliveryDate = text(delivery, "ActualDeliveryDate")
	}

	if means := child(root, "PaymentMeans"); means != nil {
		payment := &model.PaymentMeans{
			Means:     registry.PaymentMeans.SymbolOrPassthrough(text(means, "PaymentMeansCode")),
			PaymentID: text(means, "PaymentID"),
		}
		if account := child(means, "PayeeFinancialAccount"); account != nil {
			payment.IBAN = text(account, "ID")
		}
		inv.Payment = payment
	}

	for _, elem := range children(root, "AllowanceCharge") {
		inv.AllowanceCharges = append(inv.AllowanceCharges, parseAllowanceCharge(elem, true))
	}

	if total := child(root, "TaxTotal"); total != nil {
		inv.Tax = parseTaxTotal(total)
	}

	if total := child(root, "LegalMonetaryTotal"); total != nil {
		inv.Totals = model.MonetaryTotal{
			LineExtension: text(total, "LineExtensionAmount"),
			TaxExclusive:  text(total, "TaxExclusiveAmount"),
			TaxInclusive:  text(total, "TaxInclusiveAmount"),
			Payable:       text(total, "PayableAmount"),
		}
	}

	for _, elem := range children(root, "InvoiceLine") {
		inv.Lines = append(inv.Lines, parseLine(elem))
	}

	return inv, nil
}

func parseIssueDateTime(root *etree.Element, inv *model.Invoice) {
	date := text(root, "IssueDate")
	clock := text(root, "IssueTime")

	if date == "" {
		return
	}
	combined := date
	layout := "2006-01-02"
	if clock != "" {
		combined = date + "T" + clock
		layout = "2006-01-02T15:04:05"
	}
	if t, err := time.Parse(layout, combined); err == nil {
		inv.IssueDate = t
		inv.IssueTime = t
	}
}

func parseExtensions(root *etree.Element, inv *model.Invoice) {
	extensions := child(root, "UBLExtensions")
	if extensions == nil {
		return
	}
	for _, ext := range children(extensions, "UBLExtension") {
		content := child(ext, "ExtensionContent")
		if content == nil {
			continue
		}
		if marker := child(content, "CashAccountingIndicator"); marker != nil {
			if strings.TrimSpace(marker.Text()) == "true" {
				inv.CashAccounting = true
			}
		}
	}
}

// splitNotes separates user notes from the synthetic operator notes,
// which are recognized by literal prefix and stripped from the result.
func splitNotes(root *etree.Element) (notes []string, operatorName, operatorID string) {
	for _, elem := range children(root, "Note") {
		note := elem.Text()
		switch {
		case strings.HasPrefix(note, builder.OperatorNotePrefix):
			operatorName = strings.TrimPrefix(note, builder.OperatorNotePrefix)
		case strings.HasPrefix(note, builder.OperatorOIBPrefix):
			operatorID = strings.TrimPrefix(note, builder.OperatorOIBPrefix)
		case strings.HasPrefix(note, builder.IssuedAtNotePrefix):
			// issuance timestamp note, redundant with IssueDate/IssueTime
		default:
			notes = append(notes, note)
		}
	}
	return notes, operatorName, operatorID
}

func parseAttachment(ref *etree.Element) (model.Attachment, bool) {
	wrapper := child(ref, "Attachment")
	if wrapper == nil {
		return model.Attachment{}, false
	}
	binary := child(wrapper, "EmbeddedDocumentBinaryObject")
	if binary == nil {
		return model.Attachment{}, false
	}
	return model.Attachment{
		ID:       text(ref, "ID"),
		Filename: attr(binary, "filename"),
		MimeType: attr(binary, "mimeCode"),
		Data:     strings.TrimSpace(binary.Text()),
	}, true
}

func parseParty(wrapper *etree.Element) model.Party {
	var p model.Party

	party := child(wrapper, "Party")
	if party != nil {
		p.OIB = text(party, "EndpointID")
		if p.OIB == "" {
			if ident := child(party, "PartyIdentification"); ident != nil {
				p.OIB = text(ident, "ID")
			}
		}

		if address := child(party, "PostalAddress"); address != nil {
			p.Address = model.Address{
				Street:     text(address, "StreetName"),
				City:       text(address, "CityName"),
				PostalCode: text(address, "PostalZone"),
			}
			if country := child(address, "Country"); country != nil {
				p.Address.Country = text(country, "IdentificationCode")
			}
		}

		if taxScheme := child(party, "PartyTaxScheme"); taxScheme != nil {
			p.Tax.CompanyID = text(taxScheme, "CompanyID")
			if scheme := child(taxScheme, "TaxScheme"); scheme != nil {
				p.Tax.Scheme = registry.TaxSchemes.SymbolOrPassthrough(text(scheme, "ID"))
			}
		}

		if legal := child(party, "PartyLegalEntity"); legal != nil {
			p.Name = text(legal, "RegistrationName")
		}

		if contact := child(party, "Contact"); contact != nil {
			c := &model.Contact{
				Name:  text(contact, "Name"),
				Email: text(contact, "ElectronicMail"),
				Phone: text(contact, "Telephone"),
			}
			if c.Name != "" || c.Email != "" || c.Phone != "" {
				p.Contact = c
			}
		}
	}

	if seller := child(wrapper, "SellerContact"); seller != nil {
		op := &model.Operator{
			ID:   text(seller, "ID"),
			Name: text(seller, "Name"),
		}
		if op.ID != "" || op.Name != "" {
			p.Operator = op
		}
	}

	return p
}

// parseAllowanceCharge reads one allowance/charge element. A tax category
// on a line-level entry has no model representation and is dropped.
func parseAllowanceCharge(elem *etree.Element, documentLevel bool) model.AllowanceCharge {
	ac := model.AllowanceCharge{
		Charge:     text(elem, "ChargeIndicator") == "true",
		Amount:     text(elem, "Amount"),
		ReasonText: text(elem, "AllowanceChargeReason"),
		BaseAmount: text(elem, "BaseAmount"),
	}

	if code := text(elem, "AllowanceChargeReasonCode"); code != "" {
		table := registry.AllowanceReasons
		if ac.Charge {
			table = registry.ChargeReasons
		}
		ac.Reason = table.SymbolOrPassthrough(code)
	}

	if raw := text(elem, "MultiplierFactorNumeric"); raw != "" {
		if v, ok := numeric.ParseFloat(raw); ok {
			ac.Percent = &v
		}
	}

	if documentLevel {
		if cat := child(elem, "TaxCategory"); cat != nil {
			category := parseTaxCategory(cat)
			ac.TaxCategory = &category
		}
	}

	return ac
}

func parseTaxTotal(total *etree.Element) model.TaxTotal {
	t := model.TaxTotal{
		Amount: text(total, "TaxAmount"),
	}
	for _, elem := range children(total, "TaxSubtotal") {
		sub := model.TaxSubtotal{
			TaxableAmount: text(elem, "TaxableAmount"),
			TaxAmount:     text(elem, "TaxAmount"),
		}
		if cat := child(elem, "TaxCategory"); cat != nil {
			sub.Category = parseTaxCategory(cat)
		}
		t.Subtotals = append(t.Subtotals, sub)
	}
	return t
}

func parseTaxCategory(elem *etree.Element) model.TaxCategory {
	cat := model.TaxCategory{
		ID:              registry.TaxCategories.SymbolOrPassthrough(text(elem, "ID")),
		Name:            text(elem, "Name"),
		ExemptionReason: text(elem, "TaxExemptionReason"),
	}
	if code := text(elem, "TaxExemptionReasonCode"); code != "" {
		cat.ExemptionReasonCode = registry.ExemptionReasons.SymbolOrPassthrough(code)
	}
	if raw := text(elem, "Percent"); raw != "" {
		if v, ok := numeric.ParseFloat(raw); ok {
			cat.Percent = v
		}
	}
	if scheme := child(elem, "TaxScheme"); scheme != nil {
		cat.Scheme = registry.TaxSchemes.SymbolOrPassthrough(text(scheme, "ID"))
	}
	return cat
}

func parseLine(elem *etree.Element) model.Line {
	line := model.Line{
		ID:                  text(elem, "ID"),
		LineExtensionAmount: text(elem, "LineExtensionAmount"),
	}

	if quantity := child(elem, "InvoicedQuantity"); quantity != nil {
		if v, ok := numeric.ParseFloat(quantity.Text()); ok {
			line.Quantity = v
		}
		line.Unit = registry.Units.SymbolOrPassthrough(attr(quantity, "unitCode"))
	}

	for _, ac := range children(elem, "AllowanceCharge") {
		line.AllowanceCharges = append(line.AllowanceCharges, parseAllowanceCharge(ac, false))
	}

	if item := child(elem, "Item"); item != nil {
		line.Item.Name = text(item, "Name")
		if classification := child(item, "CommodityClassification"); classification != nil {
			line.Item.Classification = text(classification, "ItemClassificationCode")
		}
		if cat := child(item, "ClassifiedTaxCategory"); cat != nil {
			line.Item.TaxCategory = parseTaxCategory(cat)
		}
	}

	if price := child(elem, "Price"); price != nil {
		line.Price.Amount = text(price, "PriceAmount")
		if base := child(price, "BaseQuantity"); base != nil {
			if v, ok := numeric.ParseFloat(base.Text()); ok {
				line.Price.BaseQuantity = &v
			}
			line.Price.BaseUnit = registry.Units.SymbolOrPassthrough(attr(base, "unitCode"))
		}
	}

	return line
}

// Navigation helpers. etree keeps the namespace prefix in Space and the
// local name in Tag, so matching on Tag alone is prefix-independent.

func child(parent *etree.Element, local string) *etree.Element {
	for _, elem := range parent.ChildElements() {
		if elem.Tag == local {
			return elem
		}
	}
	return nil
}

func children(parent *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, elem := range parent.ChildElements() {
		if elem.Tag == local {
			out = append(out, elem)
		}
	}
	return out
}

// text returns the trimmed text of the named direct child, empty when
// the child is missing.
func text(parent *etree.Element, local string) string {
	elem := child(parent, local)
	if elem == nil {
		return ""
	}
	return strings.TrimSpace(elem.Text())
}

func attr(elem *etree.Element, key string) string {
	for _, a := range elem.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}
