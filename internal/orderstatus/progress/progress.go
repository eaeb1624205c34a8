// Package progress projects an order status onto the fixed milestones of the
// customer-facing progress bar.
package progress

import "go-artstore/internal/orderstatus/lifecycle"

// BeforeFirstMilestone is the index of a status that precedes every milestone.
const BeforeFirstMilestone = -1

var milestones = []lifecycle.Status{
	lifecycle.Confirmed,
	lifecycle.Processing,
	lifecycle.Shipped,
	lifecycle.Delivered,
}

type Milestone struct {
	Status  lifecycle.Status
	Reached bool
}

type Projection struct {
	CurrentIndex       int
	CompletionFraction float64
	Milestones         []Milestone
}

// Milestones returns a copy of the milestone sequence.
func Milestones() []lifecycle.Status {
	res := make([]lifecycle.Status, len(milestones))
	copy(res, milestones)
	return res
}

// Project returns false for statuses that have no meaningful progress:
// cancelled, refunded and anything unrecognised.
func Project(status lifecycle.Status) (Projection, bool) {
	if _, ok := status.Position(); !ok {
		return Projection{}, false
	}

	index := milestoneIndex(status)
	res := Projection{
		CurrentIndex:       index,
		CompletionFraction: fraction(index),
		Milestones:         make([]Milestone, len(milestones)),
	}
	for i, m := range milestones {
		res.Milestones[i] = Milestone{
			Status:  m,
			Reached: i <= index,
		}
	}
	return res, true
}

// milestoneIndex maps a non-terminal status to its milestone. A status that
// comes before the first milestone maps to BeforeFirstMilestone.
func milestoneIndex(status lifecycle.Status) int {
	for i, m := range milestones {
		if m == status {
			return i
		}
	}
	if status.Before(milestones[0]) {
		return BeforeFirstMilestone
	}
	return len(milestones) - 1
}

func fraction(index int) float64 {
	if len(milestones) < 2 {
		return 1
	}
	f := float64(index) / float64(len(milestones)-1)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
