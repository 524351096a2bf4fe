package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "trees.db")))
	t.Cleanup(func() { s.Close() })
	return s
}

func fruitTree() *domain.Tree {
	apples := domain.NewNode("Apples", domain.NewNode("Fuji"), domain.NewNode("Gala"))
	apples.Key = "apples"
	return domain.NewTree(
		domain.NewNode("Fruits", apples, domain.NewNode("Pears")),
		domain.NewNode("Vegetables", domain.NewNode("Leeks")),
	)
}

func labelPaths(tree *domain.Tree) []string {
	var out []string
	domain.Annotate(tree).Walk(func(n *domain.Node) bool {
		out = append(out, n.Path()+" "+n.Label)
		return true
	})
	return out
}

func TestStore_ConnectionPragmas(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var mode string
	require.NoError(t, s.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	// Hold two connections at once so the pool cannot hand back the same one
	first, err := s.db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := s.db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var timeout, sync int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA synchronous").Scan(&sync))
		assert.Equal(t, 5000, timeout)
		assert.Equal(t, 1, sync, "synchronous should be NORMAL")
	}
}

func TestStore_ImportLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n, err := s.Import(ctx, "fruits", fruitTree())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	tree, err := s.Load(ctx, "fruits")
	require.NoError(t, err)
	assert.Equal(t, labelPaths(fruitTree()), labelPaths(tree))
	assert.Equal(t, "apples", tree.Lookup("1.1").Key)
}

func TestStore_ImportReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, "fruits", fruitTree())
	require.NoError(t, err)
	_, err = s.Import(ctx, "fruits", domain.NewTree(domain.NewNode("Only")))
	require.NoError(t, err)

	tree, err := s.Load(ctx, "fruits")
	require.NoError(t, err)
	assert.Equal(t, []string{"1 Only"}, labelPaths(tree))
}

func TestStore_TreesAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a"} {
		_, err := s.Import(ctx, name, fruitTree())
		require.NoError(t, err)
	}

	names, err := s.Trees(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, application.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a"), application.ErrNotFound)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM nodes WHERE tree = 'a'`).Scan(&count))
	assert.Zero(t, count)
}

func TestStore_ImportRequiresName(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Import(context.Background(), "", fruitTree())
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestStore_CorruptRows(t *testing.T) {
	tests := []struct {
		name    string
		rows    string
		wantErr error
	}{
		{
			name:    "dangling parent",
			rows:    `('x', 1, NULL, 0, 'A', ''), ('x', 2, 9, 0, 'B', '')`,
			wantErr: application.ErrNotFound,
		},
		{
			name:    "self parent",
			rows:    `('x', 1, NULL, 0, 'A', ''), ('x', 2, 2, 0, 'B', '')`,
			wantErr: application.ErrCycle,
		},
		{
			name:    "two node cycle",
			rows:    `('x', 1, NULL, 0, 'A', ''), ('x', 2, 3, 0, 'B', ''), ('x', 3, 2, 0, 'C', '')`,
			wantErr: application.ErrCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			_, err := s.db.Exec(`INSERT INTO trees (name, imported_at) VALUES ('x', 0)`)
			require.NoError(t, err)
			_, err = s.db.Exec(`INSERT INTO nodes (tree, id, parent_id, position, label, key) VALUES ` + tt.rows)
			require.NoError(t, err)

			_, err = s.Load(context.Background(), "x")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildTree_Ordering(t *testing.T) {
	rows := []row{
		{ID: 5, Parent: sql.NullInt64{Int64: 1, Valid: true}, Position: 1, Label: "second"},
		{ID: 1, Position: 0, Label: "root"},
		{ID: 3, Parent: sql.NullInt64{Int64: 1, Valid: true}, Position: 0, Label: "first"},
	}

	tree, err := buildTree(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 root", "1.1 first", "1.2 second"}, labelPaths(tree))
}

func TestTreeSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trees.db")
	s := NewStore()
	require.NoError(t, s.Open(dbPath))
	_, err := s.Import(context.Background(), "fruits", fruitTree())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	src := NewTreeSource(dbPath, "fruits")
	assert.Equal(t, dbPath+"#fruits", src.Name())

	tree, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, tree.Len())
}
