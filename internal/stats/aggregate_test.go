package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

func entry(line, shift, reason string) domain.Entry {
	return domain.Entry{Line: line, Shift: shift, Reason: reason}
}

func TestAggregate(t *testing.T) {
	entries := []domain.Entry{
		entry("TRIM 1", "BLUE", "Scratch"),
		entry("TRIM 1", "RED", "Dent"),
		entry("TRIM 2", "BLUE", "Scratch"),
	}

	got := Aggregate(entries)

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, []domain.CountRow{{Key: "TRIM 1", Count: 2}, {Key: "TRIM 2", Count: 1}}, got.ByLine)
	assert.Equal(t, []domain.CountRow{{Key: "BLUE", Count: 2}, {Key: "RED", Count: 1}}, got.ByShift)
	assert.Equal(t, []domain.CountRow{{Key: "Scratch", Count: 2}, {Key: "Dent", Count: 1}}, got.ByReason)
}

func TestAggregate_TiesBreakByKey(t *testing.T) {
	got := Aggregate([]domain.Entry{
		entry("C", "S", "r"),
		entry("A", "S", "r"),
		entry("B", "S", "r"),
	})

	assert.Equal(t, []domain.CountRow{{Key: "A", Count: 1}, {Key: "B", Count: 1}, {Key: "C", Count: 1}}, got.ByLine)
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)

	assert.Zero(t, got.Total)
	assert.Empty(t, got.ByLine)
	assert.Empty(t, got.ByShift)
	assert.Empty(t, got.ByReason)
}

func TestAggregate_ReasonsCappedAtTopLimit(t *testing.T) {
	var entries []domain.Entry
	for i := 0; i < TopReasonsLimit+5; i++ {
		entries = append(entries, entry("L", "S", fmt.Sprintf("reason-%02d", i)))
	}
	// one extra occurrence lifts the last reason to the top
	entries = append(entries, entry("L", "S", fmt.Sprintf("reason-%02d", TopReasonsLimit+4)))

	got := Aggregate(entries)

	assert.Len(t, got.ByReason, TopReasonsLimit)
	assert.Equal(t, domain.CountRow{Key: fmt.Sprintf("reason-%02d", TopReasonsLimit+4), Count: 2}, got.ByReason[0])
	assert.Equal(t, "reason-00", got.ByReason[1].Key)
}

func TestAggregate_BreakdownsSumToTotal(t *testing.T) {
	lines := []string{"TRIM 1", "TRIM 2", "FINAL 1"}
	shifts := []string{"BLUE", "RED"}
	var entries []domain.Entry
	for i := 0; i < 50; i++ {
		entries = append(entries, entry(lines[i%len(lines)], shifts[i%len(shifts)], fmt.Sprintf("r%d", i%7)))
	}

	got := Aggregate(entries)

	sum := func(rows []domain.CountRow) int {
		n := 0
		for _, r := range rows {
			n += r.Count
		}
		return n
	}
	assert.Equal(t, got.Total, sum(got.ByLine))
	assert.Equal(t, got.Total, sum(got.ByShift))
	assert.Equal(t, got.Total, sum(got.ByReason), "fewer than the cap, so nothing is dropped")
}
