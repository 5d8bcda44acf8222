package entity

// ReceiptHeader holds the store header printed at the top of a thermal receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem is a single jewellery line on a receipt.
type ReceiptItem struct {
	SrNo      int    `json:"sr_no"`
	Name      string `json:"name"`
	Purity    string `json:"purity,omitempty"`
	NetWeight string `json:"net_weight"`
	Amount    string `json:"amount"`
}

// Receipt is a value object composed from a bill at print time. It is not a
// database entity.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	InvoiceNo   string        `json:"invoice_no"`
	Date        string        `json:"date"`
	Customer    string        `json:"customer,omitempty"`
	PaymentMode string        `json:"payment_mode,omitempty"`
	Status      string        `json:"status"`
	Items       []ReceiptItem `json:"items"`
	Taxable     string        `json:"taxable"`
	CGSTLabel   string        `json:"cgst_label"`
	CGST        string        `json:"cgst"`
	SGSTLabel   string        `json:"sgst_label"`
	SGST        string        `json:"sgst"`
	Total       string        `json:"total"`
	InWords     string        `json:"in_words,omitempty"`
	VerifyURL   string        `json:"verify_url,omitempty"`
}
