package workflow

import (
	"strings"

	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
)

// AliasMap resolves operator-typed item names to one canonical label. It is built fresh
// for every pass and only grows while the pass runs.
type AliasMap struct {
	canonical      map[string]string
	inventoryNames []string
	inventoryKeys  []string
}

// NewAliasMap seeds the map with the names of the current inventory snapshot, which win
// over spellings first seen in transactions.
func NewAliasMap(inventoryNames []string) *AliasMap {
	names := append([]string(nil), inventoryNames...)
	models.SortItemNames(names)
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = utils.NormalizeKey(name)
	}
	return &AliasMap{
		canonical:      make(map[string]string),
		inventoryNames: names,
		inventoryKeys:  keys,
	}
}

// Canonical returns the canonical name for raw, registering a new alias when raw is unseen.
// Names with no letters or digits are not canonicalized and report ok=false.
func (a *AliasMap) Canonical(raw string) (name string, ok bool) {
	key := utils.NormalizeKey(raw)
	if key == "" {
		return "", false
	}
	if name, ok := a.canonical[key]; ok {
		return name, true
	}
	name = a.matchInventory(key)
	if name == "" {
		name = strings.TrimSpace(raw)
	}
	a.canonical[key] = name
	return name, true
}

// matchInventory prefers an exact normalized match. Failing that, a normalized substring in
// either direction matches, which absorbs typos like "100" vs "100Size" but also merges
// "Ring" into "Ring Box".
func (a *AliasMap) matchInventory(key string) string {
	for i, invKey := range a.inventoryKeys {
		if invKey == key {
			return a.inventoryNames[i]
		}
	}
	for i, invKey := range a.inventoryKeys {
		if invKey == "" {
			continue
		}
		if strings.Contains(invKey, key) || strings.Contains(key, invKey) {
			return a.inventoryNames[i]
		}
	}
	return ""
}

func (a *AliasMap) Len() int {
	return len(a.canonical)
}

// Aliases returns a copy of the normalized key -> canonical name mapping.
func (a *AliasMap) Aliases() map[string]string {
	out := make(map[string]string, len(a.canonical))
	for k, v := range a.canonical {
		out[k] = v
	}
	return out
}
