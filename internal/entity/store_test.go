package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	item := StoreItem{ID: "theme-notte", Price: 1000}

	if got := item.EffectivePrice(now); got != 1000 {
		t.Errorf("no promotion: got %d, want 1000", got)
	}

	item.Promotion = &Promotion{DiscountPercent: 20, EndsAt: now.Add(24 * time.Hour)}
	if got := item.EffectivePrice(now); got != 800 {
		t.Errorf("active promotion: got %d, want 800", got)
	}

	item.Promotion.EndsAt = now.Add(-time.Minute)
	if got := item.EffectivePrice(now); got != 1000 {
		t.Errorf("expired promotion: got %d, want 1000", got)
	}
}

func TestItemKindJSONRoundTrip(t *testing.T) {
	cases := []ItemKind{KindTheme, KindTitle, KindStreakFreeze, CustomKind("sticker")}
	for _, kind := range cases {
		raw, err := json.Marshal(kind)
		if err != nil {
			t.Fatalf("marshal %v: %v", kind, err)
		}
		var decoded ItemKind
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if decoded.Label() != kind.Label() {
			t.Errorf("round trip: got %q, want %q", decoded.Label(), kind.Label())
		}
	}

	if !CustomKind("sticker").IsCustom() {
		t.Error("CustomKind must report IsCustom")
	}
	if KindTheme.IsCustom() {
		t.Error("built-in kind must not report IsCustom")
	}
}

func TestParseItemKind(t *testing.T) {
	if kind := ParseItemKind("streak_freeze"); kind != KindStreakFreeze {
		t.Errorf("got %v, want KindStreakFreeze", kind)
	}
	if kind := ParseItemKind("badge"); !kind.IsCustom() || kind.Label() != "badge" {
		t.Errorf("unknown label must become custom, got %v", kind)
	}
}

func TestLevelOrdering(t *testing.T) {
	if next, ok := LevelA1.Next(); !ok || next != LevelA2 {
		t.Errorf("A1.Next: got %v %v", next, ok)
	}
	if _, ok := LevelC1.Next(); ok {
		t.Error("C1 has no next level")
	}
	through := LevelB1.Through()
	if len(through) != 3 || through[2] != LevelB1 {
		t.Errorf("B1.Through: got %v", through)
	}
	if NormalizeLevel(Level("Z9")) != LevelA1 {
		t.Error("unknown level must normalize to A1")
	}
	if ParseLevel(" b2 ") != LevelB2 {
		t.Error("ParseLevel must trim and upcase")
	}
}
