package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/models"
	"truthlens/internal/presenter"
)

func TestCommitOverwritesCurrent(t *testing.T) {
	s := New()
	_, ok := s.Current()
	assert.False(t, ok)

	first := models.PredictionResult{Probability: 0.95, Label: 1, Prediction: "Fake"}
	s.Commit(Snapshot{Result: first, Presentation: presenter.Classify(first), Preview: "uno"})

	second := models.PredictionResult{Probability: 0.05, Prediction: "Real"}
	s.Commit(Snapshot{Result: second, Presentation: presenter.Classify(second), Preview: "dos"})

	snap, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "dos", snap.Preview)
	assert.Equal(t, "VERIFICADO", snap.Presentation.Badge)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestCurrentIsIsolatedFromCaller(t *testing.T) {
	s := New()
	debug := models.DebugMetadata{"extraction_method": "OCR"}
	s.Commit(Snapshot{Debug: debug})

	debug["extraction_method"] = "URL Scraping"
	snap, _ := s.Current()
	assert.Equal(t, "OCR", snap.Debug.ExtractionMethod())

	snap.Debug["extraction_method"] = "changed"
	again, _ := s.Current()
	assert.Equal(t, "OCR", again.Debug.ExtractionMethod())
}

func TestStoreGet(t *testing.T) {
	st := NewStore(0, 0)

	a := st.Get("")
	require.NotEmpty(t, a.ID)
	assert.Same(t, a, st.Get(a.ID))

	b := st.Get("does-not-exist")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, st.Len())
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	st := NewStore(10*time.Minute, 0)
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	stale := st.Get("")
	kept := st.Get("")
	require.Equal(t, 2, st.Len())

	clock = clock.Add(6 * time.Minute)
	assert.Same(t, kept, st.Get(kept.ID))

	clock = clock.Add(6 * time.Minute)
	again := st.Get(stale.ID)
	assert.NotEqual(t, stale.ID, again.ID, "expired session must not be returned")
	assert.Same(t, kept, st.Get(kept.ID))
	assert.Equal(t, 2, st.Len())
}

func TestStoreKeepsBusySessionsPastIdle(t *testing.T) {
	st := NewStore(time.Minute, 0)
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	s := st.Get("")
	require.True(t, s.Begin())

	clock = clock.Add(time.Hour)
	assert.Same(t, s, st.Get(s.ID))
	s.End()
}

func TestStoreIsBounded(t *testing.T) {
	st := NewStore(time.Hour, 50)
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	first := st.Get("")
	for i := 0; i < 10000; i++ {
		clock = clock.Add(time.Millisecond)
		st.Get("")
	}
	assert.Equal(t, 50, st.Len())

	clock = clock.Add(time.Millisecond)
	assert.NotEqual(t, first.ID, st.Get(first.ID).ID, "oldest session should have been evicted")
}

func TestSessionBeginEnd(t *testing.T) {
	s := New()
	require.True(t, s.Begin())
	assert.True(t, s.Busy())
	assert.False(t, s.Begin())

	s.End()
	assert.False(t, s.Busy())
	assert.True(t, s.Begin())
}
