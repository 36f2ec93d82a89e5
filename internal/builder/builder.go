// Package builder emits the UBL 2.1 invoice document, extended with the
// national fiscalization profile, from a validated model. Construction is
// strictly ordered per the target schema and every absent optional is
// omitted entirely rather than emitted empty.
package builder

import (
	"github.com/beevik/etree"

	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/numeric"
	"github.com/rezonia/eracun/internal/registry"
)

// Namespace declarations carried on every generated document.
const (
	InvoiceNamespace = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	CacNamespace     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	CbcNamespace     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	ExtNamespace     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	FiscalNamespace  = "urn:mfin.gov.hr:schema:xsd:FiskalizacijaExtension-1"

	CustomizationID = "urn:cen.eu:en16931:2017#compliant#urn:mfin.gov.hr:cius-2025:1.0"

	// EndpointSchemeID is the ISO 6523 scheme for the national tax id.
	EndpointSchemeID = "9934"
)

// Build renders a validated model to XML text, declaration included.
func Build(inv *model.Invoice) ([]byte, error) {
	doc := BuildDocument(inv)
	doc.Indent(2)
	return doc.WriteToBytes()
}

// BuildDocument constructs the element tree for a validated model.
func BuildDocument(inv *model.Invoice) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", InvoiceNamespace)
	root.CreateAttr("xmlns:cac", CacNamespace)
	root.CreateAttr("xmlns:cbc", CbcNamespace)
	root.CreateAttr("xmlns:ext", ExtNamespace)
	root.CreateAttr("xmlns:hrf", FiscalNamespace)

	currency, _ := registry.Currencies.Code(inv.Currency)

	addExtensions(root, inv)

	root.CreateElement("cbc:CustomizationID").SetText(CustomizationID)
	profile, _ := registry.Processes.Code(inv.Process)
	root.CreateElement("cbc:ProfileID").SetText(profile)

	root.CreateElement("cbc:ID").SetText(inv.ID)
	root.CreateElement("cbc:IssueDate").SetText(inv.IssueDate.Format("2006-01-02"))
	root.CreateElement("cbc:IssueTime").SetText(inv.IssueTime.Format("15:04:05"))
	if inv.DueDate != "" {
		root.CreateElement("cbc:DueDate").SetText(inv.DueDate)
	}

	typeCode, _ := registry.InvoiceTypes.Code(inv.Type)
	root.CreateElement("cbc:InvoiceTypeCode").SetText(typeCode)

	for _, note := range OperatorNotes(inv.Supplier.Operator, inv.IssueTime) {
		root.CreateElement("cbc:Note").SetText(note)
	}
	for _, note := range inv.Notes {
		root.CreateElement("cbc:Note").SetText(note)
	}

	root.CreateElement("cbc:DocumentCurrencyCode").SetText(currency)

	if inv.BillingReference != nil {
		ref := root.CreateElement("cac:BillingReference").CreateElement("cac:InvoiceDocumentReference")
		ref.CreateElement("cbc:ID").SetText(inv.BillingReference.ID)
		if inv.BillingReference.IssueDate != "" {
			ref.CreateElement("cbc:IssueDate").SetText(inv.BillingReference.IssueDate)
		}
	}

	for _, att := range inv.Attachments {
		addAttachment(root, att)
	}

	addParty(root, "cac:AccountingSupplierParty", &inv.Supplier, true)
	addParty(root, "cac:AccountingCustomerParty", &inv.Customer, false)

	if inv.DeliveryDate != "" {
		root.CreateElement("cac:Delivery").
			CreateElement("cbc:ActualDeliveryDate").SetText(inv.DeliveryDate)
	}

	if inv.Payment != nil {
		addPaymentMeans(root, inv.Payment)
	}

	for i := range inv.AllowanceCharges {
		addAllowanceCharge(root, &inv.AllowanceCharges[i], currency)
	}

	addTaxTotal(root, &inv.Tax, currency)
	addMonetaryTotal(root, &inv.Totals, currency)

	for i := range inv.Lines {
		addLine(root, &inv.Lines[i], currency)
	}

	return doc
}

// addExtensions writes the UBLExtensions block: the cash-accounting
// marker when set, and the empty content block reserved for a digital
// signature in every document.
func addExtensions(root *etree.Element, inv *model.Invoice) {
	extensions := root.CreateElement("ext:UBLExtensions")

	if inv.CashAccounting {
		content := extensions.CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")
		content.CreateElement("hrf:CashAccountingIndicator").SetText("true")
	}

	extensions.CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")
}

func addAttachment(root *etree.Element, att model.Attachment) {
	ref := root.CreateElement("cac:AdditionalDocumentReference")
	ref.CreateElement("cbc:ID").SetText(att.ID)

	mime, ok := registry.MimeTypes.Code(att.MimeType)
	if !ok {
		mime = att.MimeType
	}

	binary := ref.CreateElement("cac:Attachment").CreateElement("cbc:EmbeddedDocumentBinaryObject")
	binary.CreateAttr("mimeCode", mime)
	binary.CreateAttr("filename", att.Filename)
	binary.SetText(att.Data)
}

func addParty(root *etree.Element, name string, p *model.Party, supplier bool) {
	wrapper := root.CreateElement(name)
	party := wrapper.CreateElement("cac:Party")

	endpoint := party.CreateElement("cbc:EndpointID")
	endpoint.CreateAttr("schemeID", EndpointSchemeID)
	endpoint.SetText(p.OIB)

	party.CreateElement("cac:PartyIdentification").
		CreateElement("cbc:ID").SetText(p.OIB)

	address := party.CreateElement("cac:PostalAddress")
	address.CreateElement("cbc:StreetName").SetText(p.Address.Street)
	address.CreateElement("cbc:CityName").SetText(p.Address.City)
	address.CreateElement("cbc:PostalZone").SetText(p.Address.PostalCode)
	address.CreateElement("cac:Country").
		CreateElement("cbc:IdentificationCode").SetText(p.Address.Country)

	taxScheme := party.CreateElement("cac:PartyTaxScheme")
	taxScheme.CreateElement("cbc:CompanyID").SetText(p.Tax.CompanyID)
	scheme, _ := registry.TaxSchemes.Code(p.Tax.Scheme)
	taxScheme.CreateElement("cac:TaxScheme").
		CreateElement("cbc:ID").SetText(scheme)

	party.CreateElement("cac:PartyLegalEntity").
		CreateElement("cbc:RegistrationName").SetText(p.Name)

	if p.Contact != nil {
		contact := party.CreateElement("cac:Contact")
		if p.Contact.Name != "" {
			contact.CreateElement("cbc:Name").SetText(p.Contact.Name)
		}
		if p.Contact.Phone != "" {
			contact.CreateElement("cbc:Telephone").SetText(p.Contact.Phone)
		}
		if p.Contact.Email != "" {
			contact.CreateElement("cbc:ElectronicMail").SetText(p.Contact.Email)
		}
	}

	// The operator contact block lets a parser recover the operator
	// identity without relying on the notes.
	if supplier && p.Operator != nil {
		seller := wrapper.CreateElement("cac:SellerContact")
		seller.CreateElement("cbc:ID").SetText(p.Operator.ID)
		seller.CreateElement("cbc:Name").SetText(p.Operator.Name)
	}
}

func addPaymentMeans(root *etree.Element, p *model.PaymentMeans) {
	means := root.CreateElement("cac:PaymentMeans")
	code, _ := registry.PaymentMeans.Code(p.Means)
	means.CreateElement("cbc:PaymentMeansCode").SetText(code)
	if p.PaymentID != "" {
		means.CreateElement("cbc:PaymentID").SetText(p.PaymentID)
	}
	if p.IBAN != "" {
		means.CreateElement("cac:PayeeFinancialAccount").
			CreateElement("cbc:ID").SetText(p.IBAN)
	}
}

func addAllowanceCharge(parent *etree.Element, ac *model.AllowanceCharge, currency string) {
	elem := parent.CreateElement("cac:AllowanceCharge")

	indicator := "false"
	if ac.Charge {
		indicator = "true"
	}
	elem.CreateElement("cbc:ChargeIndicator").SetText(indicator)

	if ac.Reason != "" {
		table := registry.AllowanceReasons
		if ac.Charge {
			table = registry.ChargeReasons
		}
		if code, ok := table.Code(ac.Reason); ok {
			elem.CreateElement("cbc:AllowanceChargeReasonCode").SetText(code)
		} else {
			elem.CreateElement("cbc:AllowanceChargeReasonCode").SetText(ac.Reason)
		}
	}
	if ac.ReasonText != "" {
		elem.CreateElement("cbc:AllowanceChargeReason").SetText(ac.ReasonText)
	}
	if ac.Percent != nil {
		elem.CreateElement("cbc:MultiplierFactorNumeric").SetText(numeric.Percent(*ac.Percent))
	}

	amount := elem.CreateElement("cbc:Amount")
	amount.CreateAttr("currencyID", currency)
	amount.SetText(numeric.Money(ac.Amount))

	if ac.BaseAmount != "" {
		base := elem.CreateElement("cbc:BaseAmount")
		base.CreateAttr("currencyID", currency)
		base.SetText(numeric.Money(ac.BaseAmount))
	}

	if ac.TaxCategory != nil {
		addTaxCategory(elem, "cac:TaxCategory", ac.TaxCategory, false)
	}
}

func addTaxTotal(root *etree.Element, t *model.TaxTotal, currency string) {
	total := root.CreateElement("cac:TaxTotal")
	amount := total.CreateElement("cbc:TaxAmount")
	amount.CreateAttr("currencyID", currency)
	amount.SetText(numeric.Money(t.Amount))

	for i := range t.Subtotals {
		sub := &t.Subtotals[i]
		elem := total.CreateElement("cac:TaxSubtotal")

		taxable := elem.CreateElement("cbc:TaxableAmount")
		taxable.CreateAttr("currencyID", currency)
		taxable.SetText(numeric.Money(sub.TaxableAmount))

		tax := elem.CreateElement("cbc:TaxAmount")
		tax.CreateAttr("currencyID", currency)
		tax.SetText(numeric.Money(sub.TaxAmount))

		addTaxCategory(elem, "cac:TaxCategory", &sub.Category, false)
	}
}

// addTaxCategory writes a tax category. The name element is only emitted
// for classified (line) categories, where it is auto-derived from the
// percent when not explicitly supplied.
func addTaxCategory(parent *etree.Element, name string, c *model.TaxCategory, classified bool) {
	elem := parent.CreateElement(name)

	id, ok := registry.TaxCategories.Code(c.ID)
	if !ok {
		id = c.ID
	}
	elem.CreateElement("cbc:ID").SetText(id)

	if classified {
		if label := categoryName(c); label != "" {
			elem.CreateElement("cbc:Name").SetText(label)
		}
	}

	elem.CreateElement("cbc:Percent").SetText(numeric.Percent(c.Percent))

	if c.ExemptionReasonCode != "" {
		code, ok := registry.ExemptionReasons.Code(c.ExemptionReasonCode)
		if !ok {
			code = c.ExemptionReasonCode
		}
		elem.CreateElement("cbc:TaxExemptionReasonCode").SetText(code)
	}
	if c.ExemptionReason != "" {
		elem.CreateElement("cbc:TaxExemptionReason").SetText(c.ExemptionReason)
	}

	scheme, ok := registry.TaxSchemes.Code(c.Scheme)
	if !ok {
		scheme = c.Scheme
	}
	elem.CreateElement("cac:TaxScheme").
		CreateElement("cbc:ID").SetText(scheme)
}

// categoryName returns the explicit name, or the national rate label for
// the known percents.
func categoryName(c *model.TaxCategory) string {
	if c.Name != "" {
		return c.Name
	}
	switch c.Percent {
	case 0:
		return "PDV0"
	case 5:
		return "PDV5"
	case 13:
		return "PDV13"
	case 25:
		return "PDV25"
	}
	return ""
}

func addMonetaryTotal(root *etree.Element, t *model.MonetaryTotal, currency string) {
	total := root.CreateElement("cac:LegalMonetaryTotal")
	fields := []struct {
		name  string
		value string
	}{
		{"cbc:LineExtensionAmount", t.LineExtension},
		{"cbc:TaxExclusiveAmount", t.TaxExclusive},
		{"cbc:TaxInclusiveAmount", t.TaxInclusive},
		{"cbc:PayableAmount", t.Payable},
	}
	for _, f := range fields {
		elem := total.CreateElement(f.name)
		elem.CreateAttr("currencyID", currency)
		elem.SetText(numeric.Money(f.value))
	}
}

func addLine(root *etree.Element, l *model.Line, currency string) {
	line := root.CreateElement("cac:InvoiceLine")
	line.CreateElement("cbc:ID").SetText(l.ID)

	quantity := line.CreateElement("cbc:InvoicedQuantity")
	unit, ok := registry.Units.Code(l.Unit)
	if !ok {
		unit = l.Unit
	}
	quantity.CreateAttr("unitCode", unit)
	quantity.SetText(numeric.Quantity(l.Quantity))

	amount := line.CreateElement("cbc:LineExtensionAmount")
	amount.CreateAttr("currencyID", currency)
	amount.SetText(numeric.Money(l.LineExtensionAmount))

	for i := range l.AllowanceCharges {
		addAllowanceCharge(line, &l.AllowanceCharges[i], currency)
	}

	item := line.CreateElement("cac:Item")
	item.CreateElement("cbc:Name").SetText(l.Item.Name)
	item.CreateElement("cac:CommodityClassification").
		CreateElement("cbc:ItemClassificationCode").SetText(l.Item.Classification)
	addTaxCategory(item, "cac:ClassifiedTaxCategory", &l.Item.TaxCategory, true)

	price := line.CreateElement("cac:Price")
	priceAmount := price.CreateElement("cbc:PriceAmount")
	priceAmount.CreateAttr("currencyID", currency)
	priceAmount.SetText(numeric.UnitPrice(l.Price.Amount))

	if l.Price.BaseQuantity != nil && l.Price.BaseUnit != "" {
		base := price.CreateElement("cbc:BaseQuantity")
		baseUnit, ok := registry.Units.Code(l.Price.BaseUnit)
		if !ok {
			baseUnit = l.Price.BaseUnit
		}
		base.CreateAttr("unitCode", baseUnit)
		base.SetText(numeric.Quantity(*l.Price.BaseQuantity))
	}
}
