package sink

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink_NumericSeriesAccumulates(t *testing.T) {
	s := NewMemorySink()
	series := s.AddNumeric("x")
	series.Push(0, 1.0)
	series.Push(1, 3.0)

	assert.Equal(t, "x", series.Name())
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, []Point{{0, 1.0}, {1, 3.0}}, s.Numeric("x"))
}

func TestMemorySink_AddNumericIsIdempotentByName(t *testing.T) {
	s := NewMemorySink()
	a := s.AddNumeric("x")
	b := s.AddNumeric("x")
	a.Push(0, 1.0)
	assert.Equal(t, 1, b.Len(), "same name must return the same underlying series")
}

func TestMemorySink_StringSeriesInterns(t *testing.T) {
	s := NewMemorySink()
	series := s.AddString("label")
	series.Push(0, "alpha")
	series.Push(1, "beta")
	series.Push(2, "alpha")

	require.Equal(t, 3, series.Len())

	idxAlpha := series.Intern("alpha")
	idxBeta := series.Intern("beta")
	assert.NotEqual(t, idxAlpha, idxBeta)
	assert.Equal(t, "alpha", series.Lookup(idxAlpha))
	assert.Equal(t, "beta", series.Lookup(idxBeta))

	assert.Equal(t, []StringPoint{
		{Timestamp: 0, Value: "alpha"},
		{Timestamp: 1, Value: "beta"},
		{Timestamp: 2, Value: "alpha"},
	}, s.Strings("label"))
}

func TestMemorySink_StringSeriesStoresIndexNotValue(t *testing.T) {
	// A series dominated by one repeated label must retain exactly one
	// dictionary entry, not one string copy per sample (spec §4.10).
	s := NewMemorySink()
	series := s.AddString("label")
	for i := 0; i < 1000; i++ {
		series.Push(float64(i), "repeated-label")
	}

	concrete, ok := series.(*memoryStringSeries)
	require.True(t, ok)
	concrete.mu.Lock()
	numPoints := len(concrete.points)
	numDictEntries := len(concrete.dict)
	concrete.mu.Unlock()

	assert.Equal(t, 1000, numPoints)
	assert.Equal(t, 1, numDictEntries, "dictionary must hold one entry regardless of sample count")

	strs := s.Strings("label")
	require.Len(t, strs, 1000)
	assert.Equal(t, "repeated-label", strs[0].Value)
	assert.Equal(t, "repeated-label", strs[999].Value)
}

func TestMemorySink_StringSeriesLookupInvalidIndex(t *testing.T) {
	s := NewMemorySink()
	series := s.AddString("label")
	assert.Equal(t, "", series.Lookup(InvalidStringIndex))
	assert.Equal(t, "", series.Lookup(99))
}

func TestMemorySink_ConcurrentAccess(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			series := s.AddNumeric("shared")
			series.Push(float64(i), float64(i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.AddNumeric("shared").Len())
}
