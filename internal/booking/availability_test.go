package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 9*60 + 30},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if back := got.String(); back != tc.in {
			t.Errorf("TimeOfDay(%d).String() = %q, want %q", got, back, tc.in)
		}
	}
}

func TestSlotValidate(t *testing.T) {
	owner := uuid.New()

	valid := mondaySlot(owner, "09:00", "10:00")
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid recurring slot: %v", err)
	}

	dated := AvailabilitySlot{
		ID:      uuid.New(),
		OwnerID: owner,
		Date:    time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		Start:   9 * 60,
		End:     10 * 60,
	}
	if err := dated.Validate(); err != nil {
		t.Fatalf("valid one-off slot: %v", err)
	}

	t.Run("start must precede end", func(t *testing.T) {
		s := mondaySlot(owner, "10:00", "10:00")
		if err := s.Validate(); err == nil {
			t.Fatal("expected error for empty range")
		}
	})

	t.Run("recurring slot with a date is invalid", func(t *testing.T) {
		s := mondaySlot(owner, "09:00", "10:00")
		s.Date = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
		if err := s.Validate(); err == nil {
			t.Fatal("expected error for both shapes")
		}
	})

	t.Run("one-off slot without a date is invalid", func(t *testing.T) {
		s := dated
		s.Date = time.Time{}
		if err := s.Validate(); err == nil {
			t.Fatal("expected error for neither shape")
		}
	})
}

func TestSlotContains(t *testing.T) {
	owner := uuid.New()
	recurring := mondaySlot(owner, "09:00", "10:00")

	monday0930 := time.Date(2025, 6, 9, 9, 30, 0, 0, time.UTC)
	monday0900 := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	monday1000 := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	tuesday0930 := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

	if !recurring.Contains(monday0930) {
		t.Error("expected 09:30 Monday inside slot")
	}
	if !recurring.Contains(monday0900) {
		t.Error("expected start boundary inside slot")
	}
	if recurring.Contains(monday1000) {
		t.Error("expected end boundary outside slot")
	}
	if recurring.Contains(tuesday0930) {
		t.Error("expected Tuesday outside a Monday slot")
	}

	dated := AvailabilitySlot{
		OwnerID: owner,
		Date:    time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		Start:   14 * 60,
		End:     16 * 60,
	}
	if !dated.Contains(time.Date(2025, 6, 9, 15, 0, 0, 0, time.UTC)) {
		t.Error("expected instant inside dated slot")
	}
	if dated.Contains(time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC)) {
		t.Error("expected other date outside dated slot")
	}
}

func TestEvaluateAvailability(t *testing.T) {
	owner := uuid.New()
	monday0930 := time.Date(2025, 6, 9, 9, 30, 0, 0, time.UTC)
	monday1430 := time.Date(2025, 6, 9, 14, 30, 0, 0, time.UTC)

	t.Run("slots are a union", func(t *testing.T) {
		slots := []AvailabilitySlot{
			mondaySlot(owner, "09:00", "10:00"),
			{OwnerID: owner, Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Start: 14 * 60, End: 15 * 60},
		}

		if !evaluateAvailability(PolicyUnconstrained, slots, monday0930) {
			t.Error("expected recurring slot to match")
		}
		if !evaluateAvailability(PolicyUnconstrained, slots, monday1430) {
			t.Error("expected dated slot to match")
		}
		if evaluateAvailability(PolicyUnconstrained, slots, monday0930.Add(3*time.Hour)) {
			t.Error("expected 12:30 to match nothing")
		}
	})

	t.Run("overlapping declarations are fine", func(t *testing.T) {
		slots := []AvailabilitySlot{
			mondaySlot(owner, "09:00", "11:00"),
			mondaySlot(owner, "10:00", "12:00"),
		}
		if !evaluateAvailability(PolicyUnconstrained, slots, monday0930.Add(time.Hour)) {
			t.Error("expected overlap region to be available")
		}
	})

	t.Run("zero slots follow the policy", func(t *testing.T) {
		if !evaluateAvailability(PolicyUnconstrained, nil, monday0930) {
			t.Error("unconstrained: expected available")
		}
		if evaluateAvailability(PolicyRequireSlots, nil, monday0930) {
			t.Error("require-slots: expected unavailable")
		}
	})
}

func TestParseAvailabilityPolicy(t *testing.T) {
	if _, err := ParseAvailabilityPolicy("unconstrained"); err != nil {
		t.Errorf("unconstrained: %v", err)
	}
	if _, err := ParseAvailabilityPolicy("require-slots"); err != nil {
		t.Errorf("require-slots: %v", err)
	}
	if _, err := ParseAvailabilityPolicy("whatever"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
