package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmdatafocus/billing_ledger/utils"
)

// Document is one JSON object exactly as it sits in a collection.
// Keys the sanitizer does not know about, legacy keys included, survive a round trip.
type Document map[string]any

func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d Document) Float(key string) float64 {
	return utils.ToFloat(d[key])
}

func (d Document) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Bool treats "false", "0", "no" and blank strings as false; other values follow utils.IsBlank.
func (d Document) Bool(key string) bool {
	if s, ok := d[key].(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "0", "false", "no", "n":
			return false
		}
		return true
	}
	return !utils.IsBlank(d[key])
}

// SetFloat stores v under key and reports whether the stored value changed.
// Anything that is not already the identical float64 counts as a change.
func (d Document) SetFloat(key string, v float64) bool {
	if cur, ok := d[key].(float64); ok && cur == v {
		return false
	}
	d[key] = v
	return true
}

// Items returns the line items of a purchase or sale. The returned documents share
// storage with d, so edits land in the record. Non-object entries are skipped.
func (d Document) Items() []Document {
	raw, ok := d["items"].([]any)
	if !ok {
		return nil
	}
	items := make([]Document, 0, len(raw))
	for _, elm := range raw {
		switch m := elm.(type) {
		case map[string]any:
			items = append(items, Document(m))
		case Document:
			items = append(items, m)
		}
	}
	return items
}

// ToDocument converts a typed value to its generic JSON object form.
func ToDocument(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
