package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowRunsOnEnterHook(t *testing.T) {
	c := NewController()

	var entered []View
	c.Register(Trip, func(_ context.Context, e Enter) { entered = append(entered, e.View) })

	require.True(t, c.Show(context.Background(), Trip))
	assert.Equal(t, Trip, c.Current())
	assert.Equal(t, []View{Trip}, entered)
}

func TestShowUnknownViewIsNoOp(t *testing.T) {
	c := NewController()
	c.Show(context.Background(), Profile)

	assert.False(t, c.Show(context.Background(), View("settings")))
	assert.Equal(t, Profile, c.Current(), "state must be left unchanged")
}

func TestInterestIsPassedExplicitly(t *testing.T) {
	c := NewController()

	var got string
	c.Register(Trip, func(_ context.Context, e Enter) { got = e.Interest })

	c.Show(context.Background(), Trip, WithInterest("food"))
	assert.Equal(t, "food", got)

	// the signal is one-shot: the next entry carries nothing
	c.Show(context.Background(), Trip)
	assert.Empty(t, got)
}

func TestRegisterExtendsKnownViews(t *testing.T) {
	c := NewController()
	extra := View("history")

	assert.False(t, c.Show(context.Background(), extra))

	c.Register(extra, func(context.Context, Enter) {})
	assert.True(t, c.Show(context.Background(), extra))
	assert.Equal(t, extra, c.Current())
}

func TestReEnteringCurrentViewIsAllowed(t *testing.T) {
	c := NewController()

	count := 0
	c.Register(Search, func(context.Context, Enter) { count++ })

	c.Show(context.Background(), Search)
	c.Show(context.Background(), Search)
	assert.Equal(t, 2, count)
}
