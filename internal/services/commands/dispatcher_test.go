package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActions struct {
	hasNext, hasPrevious, pending bool

	toggles  int
	seeks    []float64
	next     int
	previous int
	saves    int
	skips    int
	saveErr  error
}

func (f *fakeActions) TogglePlay() { f.toggles++ }
func (f *fakeActions) Seek(delta float64) { f.seeks = append(f.seeks, delta) }
func (f *fakeActions) HasNext() bool { return f.hasNext }
func (f *fakeActions) HasPrevious() bool { return f.hasPrevious }
func (f *fakeActions) Pending() bool { return f.pending }
func (f *fakeActions) Next() error { f.next++; return nil }
func (f *fakeActions) Previous() error { f.previous++; return nil }
func (f *fakeActions) Save() error { f.saves++; return f.saveErr }
func (f *fakeActions) Skip() error { f.skips++; return nil }

func TestDispatchPlaybackIntentsHaveNoGuard(t *testing.T) {
	a := &fakeActions{pending: true}
	d := NewDispatcher(a)

	require.NoError(t, d.Dispatch(TogglePlay))
	require.NoError(t, d.Dispatch(SeekBack))
	require.NoError(t, d.Dispatch(SeekForward))
	require.NoError(t, d.Dispatch(SeekBackLarge))
	require.NoError(t, d.Dispatch(SeekForwardLarge))

	assert.Equal(t, 1, a.toggles)
	assert.Equal(t, []float64{-1, 1, -5, 5}, a.seeks)
}

func TestDispatchCustomSteps(t *testing.T) {
	a := &fakeActions{}
	d := NewDispatcher(a, WithSteps(0.5, 10))

	require.NoError(t, d.Dispatch(SeekForward))
	require.NoError(t, d.Dispatch(SeekBackLarge))
	assert.Equal(t, []float64{0.5, -10}, a.seeks)
}

func TestDispatchGuards(t *testing.T) {
	tests := []struct {
		name    string
		actions fakeActions
		intent  Intent
		blocked bool
	}{
		{"next available", fakeActions{hasNext: true}, NextItem, false},
		{"no next", fakeActions{}, NextItem, true},
		{"next while pending", fakeActions{hasNext: true, pending: true}, NextItem, true},
		{"previous available", fakeActions{hasPrevious: true}, PreviousItem, false},
		{"no previous", fakeActions{hasNext: true}, PreviousItem, true},
		{"previous while pending", fakeActions{hasPrevious: true, pending: true}, PreviousItem, true},
		{"save idle", fakeActions{}, SaveSegment, false},
		{"save while pending", fakeActions{pending: true}, SaveSegment, true},
		{"skip idle", fakeActions{}, SkipFile, false},
		{"skip while pending", fakeActions{pending: true}, SkipFile, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.actions
			err := NewDispatcher(&a).Dispatch(tt.intent)

			if tt.blocked {
				assert.ErrorIs(t, err, ErrBlocked)
				assert.Zero(t, a.next+a.previous+a.saves+a.skips)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, a.next+a.previous+a.saves+a.skips)
		})
	}
}

func TestDispatchUnknownIntentIsNoop(t *testing.T) {
	a := &fakeActions{hasNext: true, hasPrevious: true}
	d := NewDispatcher(a)

	assert.NoError(t, d.Dispatch(Intent("delete-everything")))
	assert.False(t, d.Known(Intent("delete-everything")))
	assert.True(t, d.Known(SaveSegment))
	assert.Zero(t, a.toggles+a.next+a.previous+a.saves+a.skips)
	assert.Empty(t, a.seeks)
}

func TestDispatchPropagatesActionError(t *testing.T) {
	a := &fakeActions{saveErr: errors.New("busy")}
	err := NewDispatcher(a).Dispatch(SaveSegment)
	assert.EqualError(t, err, "busy")
}

func TestIntentForKey(t *testing.T) {
	tests := map[string]Intent{
		"space":           TogglePlay,
		"ctrl+left":       SeekBackLarge,
		"ctrl+shift+left": SeekBack,
		"command+right":   SeekForwardLarge,
		"CTRL+UP":         NextItem,
		" ctrl+down ":     PreviousItem,
		"command+s":       SaveSegment,
		"ctrl+shift+s":    SkipFile,
	}
	for key, want := range tests {
		got, ok := IntentForKey(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := IntentForKey("ctrl+z")
	assert.False(t, ok)
}
