package ordering

import "time"

// Priority is a display label derived from order age. It does not change the
// order in which the kitchen sees orders.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// AllPriorities returns the labels from lowest to highest
func AllPriorities() []Priority {
	return []Priority{PriorityNormal, PriorityHigh, PriorityUrgent}
}

// PriorityThresholds holds the ages at which an order is labelled HIGH and URGENT
type PriorityThresholds struct {
	HighAfter   time.Duration
	UrgentAfter time.Duration
}

// DefaultPriorityThresholds returns 10 minutes for HIGH and 20 minutes for URGENT
func DefaultPriorityThresholds() PriorityThresholds {
	return PriorityThresholds{
		HighAfter:   10 * time.Minute,
		UrgentAfter: 20 * time.Minute,
	}
}

// Classify maps an order age to its label
func (t PriorityThresholds) Classify(age time.Duration) Priority {
	switch {
	case t.UrgentAfter > 0 && age >= t.UrgentAfter:
		return PriorityUrgent
	case t.HighAfter > 0 && age >= t.HighAfter:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}
