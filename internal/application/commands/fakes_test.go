package commands

import (
	"context"
	"errors"
	"sync"

	"a11ytree/internal/domain"
)

// fakeSource builds a fresh tree on every load
type fakeSource struct {
	name  string
	build func() *domain.Tree
	err   error
}

func (s *fakeSource) Load(ctx context.Context) (*domain.Tree, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.build(), nil
}

func (s *fakeSource) Name() string { return s.name }

type fakeStore struct {
	mu    sync.Mutex
	trees map[string]*domain.Tree
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{trees: make(map[string]*domain.Tree)}
}

func (s *fakeStore) Open(string) error { return nil }
func (s *fakeStore) Close() error      { return nil }

func (s *fakeStore) Import(_ context.Context, name string, t *domain.Tree) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[name] = t
	return t.Len(), nil
}

func (s *fakeStore) Load(_ context.Context, name string) (*domain.Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trees[name]
	if !ok {
		return nil, errors.New("missing")
	}
	return t, nil
}

func (s *fakeStore) Trees(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.trees))
	for name := range s.trees {
		names = append(names, name)
	}
	return names, nil
}

func (s *fakeStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trees, name)
	return nil
}

// fruitTree is Fruits[Apples[Fuji, Gala], Pears], Vegetables[Leeks]
func fruitTree() *domain.Tree {
	return domain.NewTree(
		domain.NewNode("Fruits",
			domain.NewNode("Apples",
				domain.NewNode("Fuji"),
				domain.NewNode("Gala"),
			),
			domain.NewNode("Pears"),
		),
		domain.NewNode("Vegetables",
			domain.NewNode("Leeks"),
		),
	)
}
