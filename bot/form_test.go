package bot

import (
	"testing"

	"tolo-telegram/models"
)

func TestFormShape(t *testing.T) {
	locations, choices := 0, 0
	for _, f := range formFields {
		switch f.Kind {
		case KindLocation:
			locations++
			if f.Side != SideNone {
				t.Errorf("location field %q must not be skippable", f.Name)
			}
		case KindChoice:
			choices++
		}
	}
	if locations != 1 {
		t.Errorf("form has %d location fields, want 1", locations)
	}
	if choices != 1 {
		t.Errorf("form has %d choice fields, want 1", choices)
	}
}

func TestNextStep(t *testing.T) {
	tests := []struct {
		from int
		skip models.SkipMode
		want int
	}{
		{0, models.SkipNone, 0},
		{0, models.SkipSender, 2},     // pickup+sender_phone skipped -> dropoff
		{1, models.SkipSender, 2},
		{2, models.SkipSender, 2},
		{2, models.SkipReceiver, 4},   // dropoff+receiver_phone skipped -> location
		{3, models.SkipReceiver, 4},
		{0, models.SkipReceiver, 0},
		{4, models.SkipSender, 4},     // location is never skipped
		{4, models.SkipReceiver, 4},
		{5, models.SkipSender, 5},
		{7, models.SkipNone, 7},
		{8, models.SkipNone, 8}, // one past the end: finalize
		{8, models.SkipSender, 8},
	}
	for _, tt := range tests {
		got := nextStep(tt.from, tt.skip)
		if got != tt.want {
			t.Errorf("nextStep(%d, %q) = %d, want %d", tt.from, tt.skip, got, tt.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0912345678", true},
		{"0922334455", true},
		{"+251912345678", true},
		{"0912345", false},        // too short
		{"09123456789", false},    // too long
		{"0812345678", false},     // wrong prefix
		{"091234567a", false},     // non-digit
		{"+25191234567", false},   // 12 chars
		{"+2519123456789", false}, // 14 chars
		{"+251812345678", false},  // wrong mobile prefix
		{"+2519a2345678", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validPhone(tt.phone); got != tt.want {
			t.Errorf("validPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"2", true},
		{"250", true},
		{"0", false},
		{"-1", false},
		{"1.5", false},
		{"abc", false},
		{"", false},
		{"+3", false},
	}
	for _, tt := range tests {
		if got := validQuantity(tt.in); got != tt.want {
			t.Errorf("validQuantity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrefillSenderSide(t *testing.T) {
	lo := &models.LastOrder{Pickup: "Bole", SenderPhone: "0912345678"}

	data := map[string]string{}
	prefillSenderSide(data, lo)
	if data["pickup"] != "Bole" || data["sender_phone"] != "0912345678" {
		t.Errorf("prefill into empty data = %v", data)
	}

	// Values the user already entered are kept.
	data = map[string]string{"pickup": "Piassa"}
	prefillSenderSide(data, lo)
	if data["pickup"] != "Piassa" {
		t.Errorf("prefill overwrote user value: %v", data)
	}
	if data["sender_phone"] != "0912345678" {
		t.Errorf("missing value not filled: %v", data)
	}
}

func TestPrefillReceiverSide(t *testing.T) {
	lo := &models.LastOrder{Dropoff: "Piassa", ReceiverPhone: "0922334455"}
	data := map[string]string{}
	prefillReceiverSide(data, lo)
	if data["dropoff"] != "Piassa" || data["receiver_phone"] != "0922334455" {
		t.Errorf("prefill into empty data = %v", data)
	}
}

// A reorder with cached "receiver pays" skips straight past the
// pre-filled sender side to the dropoff prompt.
func TestReorderEntrySkipsPrefilledSide(t *testing.T) {
	if got := nextStep(0, models.SkipSender); got != 2 {
		t.Errorf("reorder entry step = %d, want 2 (dropoff)", got)
	}
	if formFields[2].Name != "dropoff" {
		t.Errorf("field 2 = %q, want dropoff", formFields[2].Name)
	}
}
