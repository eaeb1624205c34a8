package progress_test

import (
	"testing"

	"go-artstore/internal/orderstatus/lifecycle"
	"go-artstore/internal/orderstatus/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Terminal(t *testing.T) {
	t.Run("should have no projection for terminal and unknown statuses", func(t *testing.T) {
		for _, status := range []lifecycle.Status{lifecycle.Cancelled, lifecycle.Refunded, lifecycle.Unknown} {
			projection, ok := progress.Project(status)
			assert.False(t, ok, "status %s", status)
			assert.Equal(t, progress.Projection{}, projection)
		}
	})
}

func TestProject_Forward(t *testing.T) {
	testCases := []struct {
		status   lifecycle.Status
		index    int
		fraction float64
	}{
		{lifecycle.Pending, -1, 0},
		{lifecycle.Confirmed, 0, 0},
		{lifecycle.Processing, 1, 1.0 / 3},
		{lifecycle.Shipped, 2, 2.0 / 3},
		{lifecycle.Delivered, 3, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			projection, ok := progress.Project(tc.status)

			require.True(t, ok)
			assert.Equal(t, tc.index, projection.CurrentIndex)
			assert.InDelta(t, tc.fraction, projection.CompletionFraction, 1e-9)
		})
	}
}

func TestProject_Monotonic(t *testing.T) {
	previous := -1.0
	previousIndex := progress.BeforeFirstMilestone - 1
	for _, status := range lifecycle.Forward() {
		projection, ok := progress.Project(status)
		require.True(t, ok)

		assert.GreaterOrEqual(t, projection.CompletionFraction, 0.0)
		assert.LessOrEqual(t, projection.CompletionFraction, 1.0)
		assert.GreaterOrEqual(t, projection.CompletionFraction, previous, "status %s", status)
		assert.Greater(t, projection.CurrentIndex, previousIndex, "status %s", status)

		previous = projection.CompletionFraction
		previousIndex = projection.CurrentIndex
	}
}

func TestProject_Milestones(t *testing.T) {
	t.Run("should mark milestones up to the current one as reached", func(t *testing.T) {
		projection, ok := progress.Project(lifecycle.Processing)
		require.True(t, ok)

		require.Len(t, projection.Milestones, 4)
		assert.Equal(t, []progress.Milestone{
			{Status: lifecycle.Confirmed, Reached: true},
			{Status: lifecycle.Processing, Reached: true},
			{Status: lifecycle.Shipped, Reached: false},
			{Status: lifecycle.Delivered, Reached: false},
		}, projection.Milestones)
	})

	t.Run("should mark nothing reached for pending orders", func(t *testing.T) {
		projection, ok := progress.Project(lifecycle.Pending)
		require.True(t, ok)

		for _, m := range projection.Milestones {
			assert.False(t, m.Reached, "milestone %s", m.Status)
		}
	})

	t.Run("should map each status to at most one milestone", func(t *testing.T) {
		seen := map[int]lifecycle.Status{}
		for _, status := range lifecycle.Forward() {
			projection, _ := progress.Project(status)
			if other, ok := seen[projection.CurrentIndex]; ok {
				t.Fatalf("%s and %s share milestone %d", status, other, projection.CurrentIndex)
			}
			seen[projection.CurrentIndex] = status
		}
	})

	t.Run("should not expose the internal sequence", func(t *testing.T) {
		m := progress.Milestones()
		m[0] = lifecycle.Refunded

		assert.Equal(t, lifecycle.Confirmed, progress.Milestones()[0])
	})
}
