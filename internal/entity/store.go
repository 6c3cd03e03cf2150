package entity

import (
	"encoding/json"
	"time"
)

// ItemKind is a closed set of store item categories plus one escape hatch for
// admin-defined labels. Modeling the custom case explicitly keeps switches
// over kinds exhaustive instead of matching on free-form strings.
type ItemKind struct {
	name   string
	custom string
}

var (
	KindTheme        = ItemKind{name: "theme"}
	KindTitle        = ItemKind{name: "title"}
	KindStreakFreeze = ItemKind{name: "streak_freeze"}
)

// CustomKind wraps an admin-supplied category label.
func CustomKind(label string) ItemKind {
	return ItemKind{name: "custom", custom: label}
}

// IsCustom reports whether the kind carries an admin-defined label.
func (k ItemKind) IsCustom() bool { return k.name == "custom" }

// Label returns the admin label for custom kinds, or the built-in name.
func (k ItemKind) Label() string {
	if k.IsCustom() {
		return k.custom
	}
	return k.name
}

func (k ItemKind) String() string { return k.Label() }

// ParseItemKind maps a stored label back onto a kind value.
func ParseItemKind(label string) ItemKind {
	switch label {
	case KindTheme.name:
		return KindTheme
	case KindTitle.name:
		return KindTitle
	case KindStreakFreeze.name:
		return KindStreakFreeze
	default:
		return CustomKind(label)
	}
}

func (k ItemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Label())
}

func (k *ItemKind) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*k = ParseItemKind(label)
	return nil
}

// Promotion is a time-boxed discount attached to a store item.
type Promotion struct {
	DiscountPercent int       `json:"discount_percent"`
	EndsAt          time.Time `json:"ends_at"`
}

// StoreItem is one purchasable entry in the virtual shop.
type StoreItem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kind       ItemKind   `json:"kind"`
	Price      int        `json:"price"`
	Promotion  *Promotion `json:"promotion,omitempty"`
	Consumable bool       `json:"consumable"`
}

// EffectivePrice applies an active promotion, flooring the discounted price.
// Expired promotions are ignored.
func (i StoreItem) EffectivePrice(now time.Time) int {
	if i.Promotion == nil || !i.Promotion.EndsAt.After(now) {
		return i.Price
	}
	return i.Price * (100 - i.Promotion.DiscountPercent) / 100
}
