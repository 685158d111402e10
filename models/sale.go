package models

// Sale is the canonical read view of a customer invoice.
type Sale struct {
	InvoiceNo       string     `json:"invoice_no" mapstructure:"invoice_no"`
	Date            string     `json:"date" mapstructure:"date"`
	CustomerName    string     `json:"customer_name" mapstructure:"customer_name"`
	Phone           string     `json:"phone" mapstructure:"phone"`
	Items           []LineItem `json:"items" mapstructure:"items"`
	Subtotal        float64    `json:"subtotal" mapstructure:"subtotal"`
	GstTotal        float64    `json:"gst_total" mapstructure:"gst_total"`
	GrossTotal      float64    `json:"gross_total" mapstructure:"gross_total"`
	DiscountPercent float64    `json:"discount_percent" mapstructure:"discount_percent"`
	DiscountAmount  float64    `json:"discount_amount" mapstructure:"discount_amount"`
	GrandTotal      float64    `json:"grand_total" mapstructure:"grand_total"`
	Paid            float64    `json:"paid" mapstructure:"paid"`
	Due             float64    `json:"due" mapstructure:"due"`
	PaymentMode     string     `json:"payment_mode" mapstructure:"payment_mode"`
	Cancelled       bool       `json:"cancelled" mapstructure:"cancelled"`
	CancelReason    string     `json:"cancel_reason,omitempty" mapstructure:"cancel_reason"`
	CancelledOn     string     `json:"cancelled_on,omitempty" mapstructure:"cancelled_on"`
}

type NewSale struct {
	CustomerName    string        `json:"customer_name" validate:"required"`
	Phone           string        `json:"phone" validate:"required"`
	Items           []NewLineItem `json:"items" validate:"required,min=1,dive"`
	PaymentMode     string        `json:"payment_mode"`
	PaidAmount      float64       `json:"paid_amount" validate:"gte=0"`
	DiscountPercent float64       `json:"discount_percent"`
}

func DecodeSale(doc Document) (Sale, error) {
	var s Sale
	err := decodeDocument(doc, &s)
	return s, err
}
