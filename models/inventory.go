package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// InventoryEntry is the derived stock position of one canonical item.
type InventoryEntry struct {
	Stock float64 `json:"stock" mapstructure:"stock"`
	Rate  float64 `json:"rate" mapstructure:"rate"`
}

// Inventory maps canonical item name to its entry.
type Inventory map[string]InventoryEntry

// Names returns item names ordered case-insensitively, ties broken by the raw name.
func (inv Inventory) Names() []string {
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	SortItemNames(names)
	return names
}

func SortItemNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

// MarshalJSON writes entries in Names order so the persisted snapshot is stable.
func (inv Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range inv.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(inv[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is the generic form of inv, comparable with a freshly loaded snapshot.
func (inv Inventory) Document() Document {
	doc := make(Document, len(inv))
	for name, entry := range inv {
		doc[name] = map[string]any{
			"stock": entry.Stock,
			"rate":  entry.Rate,
		}
	}
	return doc
}

// InventoryFromDocument reads a loaded snapshot leniently: legacy "qty" counts as stock,
// bad numbers become 0, and non-object entries become zero entries. doc is not modified.
func InventoryFromDocument(doc Document) Inventory {
	inv := make(Inventory, len(doc))
	for name, raw := range doc {
		entry := InventoryEntry{}
		if m, ok := raw.(map[string]any); ok {
			fields := make(Document, len(m))
			for k, v := range m {
				fields[k] = v
			}
			ApplyMigrations(fields, InventoryFieldMigrations)
			entry.Stock = fields.Float("stock")
			entry.Rate = fields.Float("rate")
		}
		inv[name] = entry
	}
	return inv
}

// DecodeInventory is the typed read view of a snapshot.
func DecodeInventory(doc Document) Inventory {
	return InventoryFromDocument(doc)
}
