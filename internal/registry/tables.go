package registry

// Tax category symbols that require an exemption reason on the category
// (warning level, see validate package).
const (
	CategoryExempt        = "exempt"
	CategoryReverseCharge = "reverse_charge"
	CategoryOutOfScope    = "out_of_scope"
)

// InvoiceTypes maps document type symbols to UNCL1001 codes.
// The original bundled a rich and a narrow type table; the narrow one was
// a strict subset, so a single canonical table is kept.
var InvoiceTypes = newTable("invoice_type", "invoice", []entry{
	{"invoice", "380"},
	{"credit_note", "381"},
	{"debit_note", "383"},
	{"corrective_invoice", "384"},
	{"prepayment_invoice", "386"},
	{"self_billed_invoice", "389"},
})

// TypesRequiringBillingReference lists invoice type symbols that must
// reference the preceding document they amend.
var TypesRequiringBillingReference = map[string]bool{
	"credit_note":        true,
	"debit_note":         true,
	"corrective_invoice": true,
}

// TaxCategories maps VAT category symbols to UNCL5305 codes.
var TaxCategories = newTable("tax_category", "standard_rate", []entry{
	{"standard_rate", "S"},
	{"zero_rated", "Z"},
	{CategoryExempt, "E"},
	{CategoryReverseCharge, "AE"},
	{CategoryOutOfScope, "O"},
})

// ExemptClassCategory reports whether the tax category symbol or code
// denotes an exempt, reverse-charge or out-of-scope treatment.
func ExemptClassCategory(v string) bool {
	s, ok := TaxCategories.Symbol(v)
	if !ok {
		return false
	}
	switch s {
	case CategoryExempt, CategoryReverseCharge, CategoryOutOfScope:
		return true
	}
	return false
}

// TaxSchemes maps tax scheme symbols to UN/ECE 5153 codes.
var TaxSchemes = newTable("tax_scheme", "vat", []entry{
	{"vat", "VAT"},
	{"gst", "GST"},
	{"excise", "EXC"},
})

// Units maps unit-of-measure symbols to UN/ECE Recommendation 20 codes.
var Units = newTable("unit", "piece", []entry{
	{"piece", "H87"},
	{"unit", "C62"},
	{"kilogram", "KGM"},
	{"gram", "GRM"},
	{"tonne", "TNE"},
	{"litre", "LTR"},
	{"cubic_metre", "MTQ"},
	{"metre", "MTR"},
	{"square_metre", "MTK"},
	{"kilometre", "KMT"},
	{"hour", "HUR"},
	{"day", "DAY"},
	{"month", "MON"},
	{"year", "ANN"},
	{"kilowatt_hour", "KWH"},
	{"set", "SET"},
	{"pair", "PR"},
	{"package", "PK"},
})

// Processes maps business process symbols to the national profile codes.
var Processes = newTable("process", "p1", []entry{
	{"p1", "P1"},
	{"p2", "P2"},
	{"p3", "P3"},
	{"p4", "P4"},
	{"p5", "P5"},
	{"p6", "P6"},
	{"p7", "P7"},
	{"p8", "P8"},
	{"p9", "P9"},
	{"p10", "P10"},
	{"p11", "P11"},
	{"p12", "P12"},
})

// Currencies holds the supported document currencies. The national
// profile allows a single one.
var Currencies = newTable("currency", "eur", []entry{
	{"eur", "EUR"},
})

// AllowanceReasons maps allowance (discount) reason symbols to UNCL5189
// codes. Disjoint from ChargeReasons by construction: 5189 codes are
// numeric, 7161 codes are alphabetic.
var AllowanceReasons = newTable("allowance_reason", "", []entry{
	{"bonus_for_works_ahead_of_schedule", "41"},
	{"other_bonus", "42"},
	{"manufacturers_consumer_discount", "60"},
	{"due_to_military_status", "62"},
	{"due_to_work_accident", "63"},
	{"special_agreement", "64"},
	{"production_error_discount", "65"},
	{"new_outlet_discount", "66"},
	{"sample_discount", "67"},
	{"end_of_range_discount", "68"},
	{"incoterm_discount", "70"},
	{"point_of_sales_threshold_allowance", "71"},
	{"material_surcharge_deduction", "88"},
	{"discount", "95"},
	{"special_rebate", "100"},
	{"fixed_long_term", "102"},
	{"temporary", "103"},
	{"standard", "104"},
	{"yearly_turnover", "105"},
})

// ChargeReasons maps charge (surcharge) reason symbols to UNCL7161 codes.
var ChargeReasons = newTable("charge_reason", "", []entry{
	{"advertising", "AA"},
	{"telecommunication", "AAA"},
	{"technical_modification", "AAC"},
	{"job_order_production", "AAD"},
	{"outlays", "AAE"},
	{"off_premises", "AAF"},
	{"additional_processing", "AAH"},
	{"attesting", "AAI"},
	{"acceptance", "AAS"},
	{"rush_delivery", "AAT"},
	{"special_construction", "AAV"},
	{"airport_facilities", "AAY"},
	{"concession", "AAZ"},
	{"compulsory_storage", "ABA"},
	{"fuel_removal", "ABB"},
	{"into_plane", "ABC"},
	{"overtime", "ABD"},
	{"miscellaneous", "ABK"},
	{"additional_packaging", "ABL"},
	{"tooling", "ABT"},
	{"freight", "FC"},
	{"financing", "FI"},
	{"insurance", "IN"},
})

// ExemptionReasons maps VAT exemption reason symbols to VATEX codes.
var ExemptionReasons = newTable("exemption_reason", "", []entry{
	{"vatex_eu_79_c", "VATEX-EU-79-C"},
	{"vatex_eu_132", "VATEX-EU-132"},
	{"vatex_eu_143", "VATEX-EU-143"},
	{"vatex_eu_148", "VATEX-EU-148"},
	{"vatex_eu_151", "VATEX-EU-151"},
	{"vatex_eu_309", "VATEX-EU-309"},
	{"vatex_eu_ae", "VATEX-EU-AE"},
	{"vatex_eu_d", "VATEX-EU-D"},
	{"vatex_eu_f", "VATEX-EU-F"},
	{"vatex_eu_g", "VATEX-EU-G"},
	{"vatex_eu_i", "VATEX-EU-I"},
	{"vatex_eu_ic", "VATEX-EU-IC"},
	{"vatex_eu_j", "VATEX-EU-J"},
	{"vatex_eu_o", "VATEX-EU-O"},
})

// MimeTypes maps attachment symbols to the allowed MIME codes. Any MIME
// type outside this table is rejected at validation time.
var MimeTypes = newTable("mime_type", "", []entry{
	{"pdf", "application/pdf"},
	{"png", "image/png"},
	{"jpeg", "image/jpeg"},
	{"gif", "image/gif"},
	{"csv", "text/csv"},
	{"xml", "application/xml"},
	{"text_xml", "text/xml"},
	{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	{"ods", "application/vnd.oasis.opendocument.spreadsheet"},
})

// PaymentMeans maps payment means symbols to UNCL4461 codes.
var PaymentMeans = newTable("payment_means", "credit_transfer", []entry{
	{"cash", "10"},
	{"cheque", "20"},
	{"credit_transfer", "30"},
	{"payment_to_bank_account", "42"},
	{"card", "48"},
	{"direct_debit", "49"},
	{"sepa_credit_transfer", "58"},
	{"sepa_direct_debit", "59"},
})
