package models

import (
	"github.com/mitchellh/mapstructure"
)

// LineItem is one item row of a purchase or a sale.
type LineItem struct {
	Item  string  `json:"item" mapstructure:"item"`
	Qty   float64 `json:"qty" mapstructure:"qty"`
	Rate  float64 `json:"rate" mapstructure:"rate"`
	Gst   float64 `json:"gst" mapstructure:"gst"`
	Total float64 `json:"total" mapstructure:"total"`
}

// decodeDocument fills out from doc, converting "12" to 12 and similar loose shapes.
func decodeDocument(doc Document, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]any(doc))
}
