package model

import "testing"

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"1,234", 1234, true},
		{" 12% ", 12, true},
		{"35.5", 35.5, true},
		{"-10", -10, true},
		{"", 0, false},
		{"%", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseNumber(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFusionOption_Text(t *testing.T) {
	t.Parallel()

	if got := (FusionOption{Explain: "short", ExplainDetail: "long"}).Text(); got != "long" {
		t.Errorf("Text() = %q; want detail", got)
	}
	if got := (FusionOption{Explain: "short"}).Text(); got != "short" {
		t.Errorf("Text() = %q; want explain fallback", got)
	}
}

func TestEquippedItem_Slots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slot      string
		weapon    bool
		accessory bool
	}{
		{SlotWeapon, true, false},
		{SlotSecondaryWeapon, true, false},
		{"Ring", false, true},
		{"Bracelet", false, true},
		{"Necklace", false, true},
		{SlotEarrings, false, true},
		{"Belt", false, false},
	}

	for _, tt := range tests {
		it := &EquippedItem{SlotName: tt.slot}
		if it.IsWeapon() != tt.weapon {
			t.Errorf("%s: IsWeapon() = %v", tt.slot, it.IsWeapon())
		}
		if it.IsAccessory() != tt.accessory {
			t.Errorf("%s: IsAccessory() = %v", tt.slot, it.IsAccessory())
		}
	}
}
