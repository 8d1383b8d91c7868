package views

import (
	"context"
	"log"
	"sync"
)

type View string

const (
	Search  View = "search"
	Trip    View = "trip"
	AI      View = "ai"
	Profile View = "profile"
)

// Enter is handed to a view's on-enter hook. Interest is the one-shot
// pre-selected interest passed explicitly at the Show call site; it is
// never round-tripped through storage.
type Enter struct {
	View     View
	Interest string
}

type Hook func(ctx context.Context, e Enter)

type Option func(*Enter)

func WithInterest(interest string) Option {
	return func(e *Enter) { e.Interest = interest }
}

// Controller is the navigation state machine. Registering a view makes it
// known; Show on anything else is a logged no-op that leaves the current
// view unchanged.
type Controller struct {
	mu      sync.Mutex
	current View
	hooks   map[View]Hook
	known   map[View]bool
}

func NewController() *Controller {
	c := &Controller{
		current: Search,
		hooks:   make(map[View]Hook),
		known:   make(map[View]bool),
	}
	for _, v := range []View{Search, Trip, AI, Profile} {
		c.known[v] = true
	}
	return c
}

// Register installs the on-enter hook for v, adding v to the known set.
func (c *Controller) Register(v View, h Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.known[v] = true
	c.hooks[v] = h
}

func (c *Controller) Current() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Show activates target and runs its on-enter hook. No transition between
// known views is ever rejected, re-entering the current view included.
func (c *Controller) Show(ctx context.Context, target View, opts ...Option) bool {
	c.mu.Lock()
	if !c.known[target] {
		c.mu.Unlock()
		log.Printf("views: ignoring unknown view %q", target)
		return false
	}
	c.current = target
	hook := c.hooks[target]
	c.mu.Unlock()

	if hook != nil {
		e := Enter{View: target}
		for _, opt := range opts {
			opt(&e)
		}
		hook(ctx, e)
	}
	return true
}
