package schedule

import (
	"testing"
)

func TestGenerateSlotsTiling(t *testing.T) {
	for _, duration := range []int{30, 45, 60, 90, 120} {
		slots := GenerateSlots(duration)
		if len(slots) == 0 {
			t.Fatalf("duration %d: expected slots", duration)
		}

		if slots[0].Start != dayStartMinute {
			t.Fatalf("duration %d: first slot starts at %d, want %d", duration, slots[0].Start, dayStartMinute)
		}

		for i, slot := range slots {
			if slot.Duration() != duration {
				t.Fatalf("duration %d: slot %v has length %d", duration, slot, slot.Duration())
			}
			if slot.End > dayEndMinute {
				t.Fatalf("duration %d: slot %v extends past 22:00", duration, slot)
			}
			if i > 0 && slot.Start != slots[i-1].End {
				t.Fatalf("duration %d: slot %v not contiguous with %v", duration, slot, slots[i-1])
			}
		}

		// The dropped remainder must be smaller than one full slot
		if dayEndMinute-slots[len(slots)-1].End >= duration {
			t.Fatalf("duration %d: gap before 22:00 could fit another slot", duration)
		}
	}
}

func TestGenerateSlotsInvalidDuration(t *testing.T) {
	if slots := GenerateSlots(0); slots != nil {
		t.Fatalf("expected nil for zero duration, got %v", slots)
	}
	if slots := GenerateSlots(-30); slots != nil {
		t.Fatalf("expected nil for negative duration, got %v", slots)
	}
}

func TestParseSlotRoundTrip(t *testing.T) {
	for _, duration := range []int{30, 45, 60, 90, 120} {
		for _, slot := range GenerateSlots(duration) {
			parsed, err := ParseSlot(slot.String())
			if err != nil {
				t.Fatalf("ParseSlot(%q) failed: %v", slot.String(), err)
			}
			if parsed != slot {
				t.Fatalf("round trip %q: got %v, want %v", slot.String(), parsed, slot)
			}
		}
	}
}

func TestParseSlotRejectsMalformed(t *testing.T) {
	cases := []string{"", "1080", "1080-", "-1140", "abc-def", "1140-1080", "1080-1080", "-10-50", "0-1441"}
	for _, c := range cases {
		if _, err := ParseSlot(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestSlotLabel(t *testing.T) {
	cases := []struct {
		slot string
		want string
	}{
		{"1080-1140", "6:00 PM - 7:00 PM"},
		{"360-420", "6:00 AM - 7:00 AM"},
		{"690-750", "11:30 AM - 12:30 PM"},
		{"720-780", "12:00 PM - 1:00 PM"},
		{"0-60", "12:00 AM - 1:00 AM"},
		{"1050-1095", "5:30 PM - 6:15 PM"},
	}
	for _, tc := range cases {
		slot, err := ParseSlot(tc.slot)
		if err != nil {
			t.Fatalf("ParseSlot(%q) failed: %v", tc.slot, err)
		}
		if got := slot.Label(); got != tc.want {
			t.Fatalf("Label(%q) = %q, want %q", tc.slot, got, tc.want)
		}
	}
}
