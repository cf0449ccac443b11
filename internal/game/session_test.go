package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/words"
)

type failingSource struct{}

func (failingSource) Load() ([]string, error) { return nil, errors.New("missing start.txt") }

func TestSession_SubmitBeforeStart(t *testing.T) {
	s := NewSession(NewEngine(newFakeDict()), "en")
	_, st := s.Snapshot()
	assert.Equal(t, StatusNotStarted, st)

	_, _, err := s.Submit("milk")
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestSession_StartAndSubmit(t *testing.T) {
	s := NewSession(NewEngine(newFakeDict("den")), "en")
	require.NoError(t, s.Start(words.StaticSource{"garden"}))

	rd, st := s.Snapshot()
	assert.Equal(t, StatusInProgress, st)
	assert.Equal(t, "garden", rd.Root)
	assert.False(t, s.StartedAt.IsZero())

	rd, out, err := s.Submit("den")
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, 4, rd.Score)

	_, out, err = s.Submit("nope")
	require.NoError(t, err)
	require.NotNil(t, out.Rejection)
	_, st = s.Snapshot()
	assert.Equal(t, StatusInProgress, st, "rejections keep the round going")
}

func TestSession_RestartClearsStateEvenForSameRoot(t *testing.T) {
	s := NewSession(NewEngine(newFakeDict("den")), "en")
	src := words.StaticSource{"garden", "garden"}
	require.NoError(t, s.Start(src))
	_, out, err := s.Submit("den")
	require.NoError(t, err)
	require.True(t, out.Accepted)

	require.NoError(t, s.Start(src))
	rd, _ := s.Snapshot()
	assert.Equal(t, "garden", rd.Root)
	assert.Empty(t, rd.Used)
	assert.Equal(t, 0, rd.Score)
}

func TestSession_StartFailureIsReported(t *testing.T) {
	s := NewSession(NewEngine(newFakeDict()), "en")

	err := s.Start(words.StaticSource{})
	assert.ErrorIs(t, err, words.ErrNoRootWords)

	err = s.Start(failingSource{})
	assert.ErrorIs(t, err, words.ErrNoRootWords)

	_, st := s.Snapshot()
	assert.Equal(t, StatusNotStarted, st)
}

func TestSession_ConcurrentSubmissionsAreSerialized(t *testing.T) {
	ws := []string{"milk", "silk", "worm", "mow", "low", "owl", "sow", "row", "rim", "ilk"}
	s := NewSession(NewEngine(newFakeDict(ws...)), "en")
	require.NoError(t, s.StartWith("silkworm"))

	var wg sync.WaitGroup
	for _, w := range ws {
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(w string) {
				defer wg.Done()
				_, _, _ = s.Submit(w)
			}(w)
		}
	}
	wg.Wait()

	rd, _ := s.Snapshot()
	// "silk" starts like the root; every other word is accepted exactly once.
	assert.Len(t, rd.Used, len(ws)-1)
	want := 0
	for i, w := range reverse(rd.Used) {
		want += len(w) + i + 1
	}
	assert.Equal(t, want, rd.Score)
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, w := range in {
		out[len(in)-1-i] = w
	}
	return out
}

func TestSession_StartWithBlankRoot(t *testing.T) {
	s := NewSession(NewEngine(newFakeDict("den")), "en")
	for _, root := range []string{"", "   ", "\t\n"} {
		assert.ErrorIs(t, s.StartWith(root), ErrBlankRoot, "%q", root)
	}
	_, st := s.Snapshot()
	assert.Equal(t, StatusNotStarted, st)

	require.NoError(t, s.StartWith(" Garden "))
	assert.ErrorIs(t, s.StartWith("  "), ErrBlankRoot)
	rd, st := s.Snapshot()
	assert.Equal(t, StatusInProgress, st)
	assert.Equal(t, "garden", rd.Root, "a rejected restart keeps the current round")
}
