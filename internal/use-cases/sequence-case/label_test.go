package sequence_case

import (
	"testing"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "2024-0001", FormatLabel(2024, 1))
	assert.Equal(t, "2024-0042", FormatLabel(2024, 42))
	assert.Equal(t, "2024-12345", FormatLabel(2024, 12345))
}

func TestParseLabel(t *testing.T) {
	year, counter, ok := ParseLabel("2023-0107")
	assert.True(t, ok)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 107, counter)

	for _, bad := range []string{"", "2023-1", "23-0001", "2023_0001", "~renumber~abc", "2023-0001x"} {
		_, _, ok := ParseLabel(bad)
		assert.False(t, ok, bad)
	}
}

func TestPlanRenumber_ClosesGaps(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []entity.LabelledVorgang{
		{ID: "a", SequentialLabel: "2024-0001", ReceivedAt: base},
		{ID: "c", SequentialLabel: "2024-0003", ReceivedAt: base.Add(2 * time.Hour)},
		{ID: "d", SequentialLabel: "2024-0004", ReceivedAt: base.Add(3 * time.Hour)},
	}

	plan := PlanRenumber(2024, records)

	assert.Equal(t, []entity.LabelRename{
		{VorgangID: "c", From: "2024-0003", To: "2024-0002"},
		{VorgangID: "d", From: "2024-0004", To: "2024-0003"},
	}, plan)
}

func TestPlanRenumber_ContiguousYearIsNoop(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []entity.LabelledVorgang{
		{ID: "b", SequentialLabel: "2024-0002", ReceivedAt: base.Add(time.Minute)},
		{ID: "a", SequentialLabel: "2024-0001", ReceivedAt: base},
	}

	assert.Empty(t, PlanRenumber(2024, records))
}

func TestPlanRenumber_TieBreaksByNumericCounter(t *testing.T) {
	same := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []entity.LabelledVorgang{
		{ID: "late", SequentialLabel: "2024-10000", ReceivedAt: same},
		{ID: "early", SequentialLabel: "2024-9999", ReceivedAt: same},
	}

	plan := PlanRenumber(2024, records)

	assert.Equal(t, []entity.LabelRename{
		{VorgangID: "early", From: "2024-9999", To: "2024-0001"},
		{VorgangID: "late", From: "2024-10000", To: "2024-0002"},
	}, plan)
}

func TestPlanRenumber_ReordersByReceivedAt(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []entity.LabelledVorgang{
		{ID: "x", SequentialLabel: "2024-0001", ReceivedAt: base.Add(time.Hour)},
		{ID: "y", SequentialLabel: "2024-0002", ReceivedAt: base},
	}

	plan := PlanRenumber(2024, records)

	assert.ElementsMatch(t, []entity.LabelRename{
		{VorgangID: "y", From: "2024-0002", To: "2024-0001"},
		{VorgangID: "x", From: "2024-0001", To: "2024-0002"},
	}, plan)
}
