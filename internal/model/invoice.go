// Package model defines the typed invoice document model shared by the
// validator, the builder and the parser, plus the aggregated error tree
// returned on validation failure.
package model

import (
	"time"

	"github.com/rezonia/eracun/internal/registry"
)

// Invoice is the validated, normalized invoice document. All fields hold
// registry symbols (never wire codes) and decimal amounts as strings; the
// builder owns fixed-precision rendering. Instances are constructed once
// per validate/parse call and never mutated afterwards.
type Invoice struct {
	ID string `json:"id"`

	// IssueDate and IssueTime are split from the combined issue_date
	// input during validation.
	IssueDate time.Time `json:"issue_date"`
	IssueTime time.Time `json:"issue_time"`

	// DueDate stays a bare YYYY-MM-DD string; it survives a round trip
	// unchanged.
	DueDate string `json:"due_date,omitempty"`

	Currency string `json:"currency"`
	Process  string `json:"process"`
	Type     string `json:"type"`

	Supplier Party         `json:"supplier"`
	Customer Party         `json:"customer"`
	Payment  *PaymentMeans `json:"payment,omitempty"`

	Tax    TaxTotal      `json:"tax"`
	Totals MonetaryTotal `json:"totals"`
	Lines  []Line        `json:"lines"`

	Notes            []string          `json:"notes,omitempty"`
	Attachments      []Attachment      `json:"attachments,omitempty"`
	AllowanceCharges []AllowanceCharge `json:"allowance_charges,omitempty"`

	BillingReference *BillingReference `json:"billing_reference,omitempty"`
	DeliveryDate     string            `json:"delivery_date,omitempty"`
	CashAccounting   bool              `json:"cash_accounting,omitempty"`
}

// RequiresBillingReference reports whether this document type must
// reference the preceding document it amends.
func (inv *Invoice) RequiresBillingReference() bool {
	return registry.TypesRequiringBillingReference[inv.Type]
}

// Party is a supplier or customer. Operator is set on suppliers only and
// feeds the regulator-mandated notes.
type Party struct {
	OIB     string    `json:"oib"`
	Name    string    `json:"name"`
	Address Address   `json:"address"`
	Tax     TaxScheme `json:"tax_scheme"`

	Contact  *Contact  `json:"contact,omitempty"`
	Operator *Operator `json:"operator,omitempty"`
}

// Address is a postal address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// TaxScheme references the party's tax registration.
type TaxScheme struct {
	CompanyID string `json:"company_id"`
	Scheme    string `json:"scheme"`
}

// Contact holds optional contact details.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Operator identifies the invoice-issuing system operator.
type Operator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentMeans describes how the invoice is to be paid.
type PaymentMeans struct {
	Means     string `json:"means"`
	IBAN      string `json:"iban,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

// TaxTotal aggregates one or more tax subtotals.
type TaxTotal struct {
	Amount    string        `json:"amount"`
	Subtotals []TaxSubtotal `json:"subtotals"`
}

// TaxSubtotal carries the taxable and tax amounts for one category.
type TaxSubtotal struct {
	TaxableAmount string      `json:"taxable_amount"`
	TaxAmount     string      `json:"tax_amount"`
	Category      TaxCategory `json:"category"`
}

// TaxCategory classifies the VAT treatment of a subtotal or a line.
type TaxCategory struct {
	ID      string  `json:"id"`
	Percent float64 `json:"percent"`
	Scheme  string  `json:"scheme"`

	// Name is the national rate label; derived from Percent by the
	// builder when empty.
	Name string `json:"name,omitempty"`

	ExemptionReason     string `json:"exemption_reason,omitempty"`
	ExemptionReasonCode string `json:"exemption_reason_code,omitempty"`
}

// ExemptClass reports whether this category denotes an exempt,
// reverse-charge or out-of-scope treatment.
func (c TaxCategory) ExemptClass() bool {
	return registry.ExemptClassCategory(c.ID)
}

// MonetaryTotal holds the document totals as decimal strings.
type MonetaryTotal struct {
	LineExtension string `json:"line_extension"`
	TaxExclusive  string `json:"tax_exclusive"`
	TaxInclusive  string `json:"tax_inclusive"`
	Payable       string `json:"payable"`
}

// Line is a single invoice line.
type Line struct {
	ID                  string  `json:"id"`
	Quantity            float64 `json:"quantity"`
	Unit                string  `json:"unit"`
	LineExtensionAmount string  `json:"line_extension_amount"`

	Item  Item  `json:"item"`
	Price Price `json:"price"`

	AllowanceCharges []AllowanceCharge `json:"allowance_charges,omitempty"`
}

// Item describes the goods or service on a line.
type Item struct {
	Name           string      `json:"name"`
	Classification string      `json:"classification"`
	TaxCategory    TaxCategory `json:"tax_category"`
}

// Price is the unit price; BaseQuantity is optional and only emitted
// together with its unit.
type Price struct {
	Amount       string   `json:"amount"`
	BaseQuantity *float64 `json:"base_quantity,omitempty"`
	BaseUnit     string   `json:"base_unit,omitempty"`
}

// AllowanceCharge is a discount (Charge=false) or surcharge (Charge=true).
// TaxCategory is mandatory at document level and absent at line level.
type AllowanceCharge struct {
	Charge      bool         `json:"charge"`
	Amount      string       `json:"amount"`
	Reason      string       `json:"reason,omitempty"`
	ReasonText  string       `json:"reason_text,omitempty"`
	Percent     *float64     `json:"percent,omitempty"`
	BaseAmount  string       `json:"base_amount,omitempty"`
	TaxCategory *TaxCategory `json:"tax_category,omitempty"`
}

// BillingReference points at the preceding document for credit notes,
// debit notes and corrective invoices.
type BillingReference struct {
	ID        string `json:"id"`
	IssueDate string `json:"issue_date,omitempty"`
}

// Attachment is an embedded binary document.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}
