package booking

import (
	"fmt"
	"time"
)

// AvailabilityPolicy names the behavior when an owner has declared zero
// slots. The original system treated such owners as unconstrained; that
// stays the default, but it is a named, configurable choice.
type AvailabilityPolicy string

const (
	// PolicyUnconstrained accepts any instant for an owner with no slots.
	PolicyUnconstrained AvailabilityPolicy = "unconstrained"
	// PolicyRequireSlots rejects proposals until the owner declares
	// at least one slot.
	PolicyRequireSlots AvailabilityPolicy = "require-slots"
)

func ParseAvailabilityPolicy(s string) (AvailabilityPolicy, error) {
	switch AvailabilityPolicy(s) {
	case PolicyUnconstrained, PolicyRequireSlots:
		return AvailabilityPolicy(s), nil
	}
	return "", fmt.Errorf("unknown availability policy %q", s)
}

// slotsCover reports whether any slot covers the instant. Slots are a
// union: declaring more slots can only widen availability, and overlapping
// declarations are fine.
func slotsCover(slots []AvailabilitySlot, at time.Time) bool {
	for _, slot := range slots {
		if slot.Contains(at) {
			return true
		}
	}
	return false
}

// evaluateAvailability applies the policy to the owner's declared slots.
func evaluateAvailability(policy AvailabilityPolicy, slots []AvailabilitySlot, at time.Time) bool {
	if len(slots) == 0 {
		return policy == PolicyUnconstrained
	}
	return slotsCover(slots, at)
}
