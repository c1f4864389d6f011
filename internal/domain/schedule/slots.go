package schedule

import "time"

// SlotStep is the fixed grid the slot generator walks. Policy, not
// configuration: every bookable start time is openTime + k*SlotStep.
const SlotStep = 30 * time.Minute

// GenerateSlots enumerates candidate reservation windows of the given
// duration across the shifts. Slot starts step by SlotStep from each shift's
// opening; a slot that would run past closing is not emitted. Shifts are
// expected sorted by opening time, so the result is chronological.
func GenerateSlots(shifts []Shift, duration time.Duration) []Interval {
	if duration <= 0 {
		return nil
	}

	var slots []Interval
	for _, shift := range shifts {
		for start := shift.open; !start.Add(duration).After(shift.close); start = start.Add(SlotStep) {
			slots = append(slots, Interval{start: start, end: start.Add(duration)})
		}
	}
	return slots
}
