package models

// Purchase is the canonical read view of a supplier transaction.
type Purchase struct {
	PurchaseId   string     `json:"purchase_id" mapstructure:"purchase_id"`
	Date         string     `json:"date" mapstructure:"date"`
	SupplierId   string     `json:"supplier_id" mapstructure:"supplier_id"`
	SupplierName string     `json:"supplier_name" mapstructure:"supplier_name"`
	Items        []LineItem `json:"items" mapstructure:"items"`
	Subtotal     float64    `json:"subtotal" mapstructure:"subtotal"`
	GstTotal     float64    `json:"gst_total" mapstructure:"gst_total"`
	GrandTotal   float64    `json:"grand_total" mapstructure:"grand_total"`
	PaidAmount   float64    `json:"paid_amount" mapstructure:"paid_amount"`
	Due          float64    `json:"due" mapstructure:"due"`
	PaymentMode  string     `json:"payment_mode" mapstructure:"payment_mode"`
}

type NewLineItem struct {
	Item string  `json:"item" validate:"required"`
	Qty  float64 `json:"qty" validate:"gt=0"`
	Rate float64 `json:"rate" validate:"gte=0"`
	Gst  float64 `json:"gst" validate:"gte=0,lte=100"`
}

type NewPurchase struct {
	SupplierId   string        `json:"supplier_id"`
	SupplierName string        `json:"supplier_name" validate:"required"`
	Items        []NewLineItem `json:"items" validate:"required,min=1,dive"`
	PaymentMode  string        `json:"payment_mode"`
	PaidAmount   float64       `json:"paid_amount" validate:"gte=0"`
}

func DecodePurchase(doc Document) (Purchase, error) {
	var p Purchase
	err := decodeDocument(doc, &p)
	return p, err
}
