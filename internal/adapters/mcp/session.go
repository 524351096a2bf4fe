package mcp

import (
	"context"
	"errors"
	"sync"

	"a11ytree/internal/application"
	"a11ytree/internal/application/commands"
	"a11ytree/internal/domain"
	"a11ytree/internal/ports"
)

var errNoTree = errors.New("no tree loaded: call the load tool first")

// Opener resolves a source location to a tree source
type Opener func(location string) (ports.TreeSource, error)

// Session holds the tree an MCP client navigates. Tool calls may arrive
// concurrently; every engine access goes through the session mutex.
type Session struct {
	mu     sync.Mutex
	open   Opener
	keys   application.KeyMap
	opts   []application.Option
	engine *application.Engine
	source ports.TreeSource
	events []string
}

// NewSession creates an empty session
func NewSession(open Opener, keys application.KeyMap, opts ...application.Option) *Session {
	if keys == nil {
		keys = application.DefaultKeyMap()
	}
	return &Session{open: open, keys: keys, opts: opts}
}

// Load replaces the session tree with the one at location
func (s *Session) Load(ctx context.Context, location string) (*domain.Tree, error) {
	src, err := s.open(location)
	if err != nil {
		return nil, err
	}
	return s.loadFrom(ctx, src)
}

func (s *Session) loadFrom(ctx context.Context, src ports.TreeSource) (*domain.Tree, error) {
	// Load outside the lock; only the swap needs it
	tree, err := commands.NewLoadTreeCommand(src).Execute(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Record hook events last so caller hooks cannot replace the recorder;
	// the recorder calls through to them
	caller := application.DefaultOptions()
	for _, opt := range s.opts {
		opt(&caller)
	}
	opts := append(append([]application.Option{}, s.opts...),
		application.WithOnExpand(func(n *domain.Node) {
			s.events = append(s.events, "expanded "+n.Path())
			caller.OnExpand(n)
		}),
		application.WithOnCollapse(func(n *domain.Node) {
			s.events = append(s.events, "collapsed "+n.Path())
			caller.OnCollapse(n)
		}),
	)
	s.engine = application.NewEngine(tree, opts...)
	s.source = src
	s.events = nil
	return tree, nil
}

// Reload reads the current source again. Navigation state is reset.
func (s *Session) Reload(ctx context.Context) (*domain.Tree, error) {
	s.mu.Lock()
	src := s.source
	s.mu.Unlock()

	if src == nil {
		return nil, errNoTree
	}
	return s.loadFrom(ctx, src)
}

// Keys returns the session key map
func (s *Session) Keys() application.KeyMap {
	return s.keys
}

// With runs fn with exclusive access to the engine
func (s *Session) With(fn func(e *application.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return errNoTree
	}
	return fn(s.engine)
}

// drainEvents returns and clears the hook events recorded since the last
// call. Callers hold the lock via With.
func (s *Session) drainEvents() []string {
	events := s.events
	s.events = nil
	return events
}
