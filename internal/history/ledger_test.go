package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func entry(i int) Entry {
	return Entry{Input: fmt.Sprintf("in-%d", i), Expression: fmt.Sprintf("%d", i), OperationType: "arithmetic"}
}

func TestLedgerRecentNewestFirst(t *testing.T) {
	l := NewLedger(5)
	for i := 1; i <= 3; i++ {
		l.Record(entry(i), ptr(float64(i)))
	}

	got := l.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, "in-3", got[0].Input)
	assert.Equal(t, "in-1", got[2].Input)

	assert.Len(t, l.Recent(2), 2)
	assert.Len(t, l.Recent(10), 3)
}

func TestLedgerEvictsOldestBeyondCapacity(t *testing.T) {
	l := NewLedger(0)
	require.Equal(t, DefaultCapacity, l.Cap())

	for i := 1; i <= 75; i++ {
		l.Record(entry(i), ptr(float64(i)))
	}

	require.Equal(t, 50, l.Len())
	all := l.Recent(0)
	assert.Equal(t, "in-75", all[0].Input)
	assert.Equal(t, "in-26", all[49].Input)
	for _, e := range all {
		assert.NotEqual(t, "in-1", e.Input)
	}
}

func TestLedgerGet(t *testing.T) {
	l := NewLedger(3)
	for i := 1; i <= 4; i++ {
		l.Record(entry(i), nil)
	}

	e, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, "in-4", e.Input)

	e, ok = l.Get(3)
	require.True(t, ok)
	assert.Equal(t, "in-2", e.Input)

	_, ok = l.Get(4)
	assert.False(t, ok)
	_, ok = l.Get(0)
	assert.False(t, ok)
}

func TestLedgerLastAnswerOnlyFromNumericResults(t *testing.T) {
	l := NewLedger(5)
	_, ok := l.LastAnswer()
	assert.False(t, ok)

	l.Record(entry(1), ptr(5))
	l.Record(entry(2), nil)

	v, ok := l.LastAnswer()
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
}

func TestLedgerClearResetsEverything(t *testing.T) {
	l := NewLedger(5)
	l.Record(entry(1), ptr(1))
	l.Clear()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Recent(0))
	_, ok := l.LastAnswer()
	assert.False(t, ok)

	l.Record(entry(2), nil)
	assert.Equal(t, "in-2", l.Recent(1)[0].Input)
}

func TestSubstitute(t *testing.T) {
	l := NewLedger(5)
	assert.Equal(t, "ans * 4", l.Substitute("ans * 4", true))

	l.Record(entry(1), ptr(5))
	assert.Equal(t, "5 * 4", l.Substitute("ans * 4", true))
	assert.Equal(t, "5 + 5", l.Substitute("ANS + ans", false))
	assert.Equal(t, "answer + 5", l.Substitute("answer + ans", true))

	l.Record(entry(2), ptr(-2.5))
	assert.Equal(t, "3 - (-2.5)", l.Substitute("3 - ans", true))
	assert.Equal(t, "-2.5 plus 3", l.Substitute("ans plus 3", false))
}

func TestLedgerConcurrentRecord(t *testing.T) {
	l := NewLedger(10)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Record(entry(i), ptr(float64(i)))
			_ = l.Recent(3)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, l.Len())
}
