package store

import (
	"context"
	"path/filepath"
	"testing"

	"vigil/internal/spec"
)

func TestOpenCreatesSchema(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	if s.db == nil {
		t.Fatal("Database connection is nil")
	}

	count, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Failed to count fragments: %v", err)
	}
	if count != 0 {
		t.Errorf("Fresh store reports %d fragments, want 0", count)
	}
}

func TestSaveAndLoadFragments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragments.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	reg := spec.NewRegistry()
	reg.Register(spec.Precondition, "lib.rs:10", "x > 0")
	reg.Register(spec.Postcondition, "lib.rs:11", "result >= old(x)")
	reg.Register(spec.Predicate, "list.rs:3", "sorted(self)")
	want := reg.Fragments()

	if err := s.SaveFragments(context.Background(), want); err != nil {
		t.Fatalf("Failed to save fragments: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	// Reopen the same file: identities must survive the restart.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s.Close()

	got, err := s.LoadFragments(context.Background())
	if err != nil {
		t.Fatalf("Failed to load fragments: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Loaded %d fragments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fragment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveFragmentsUpserts(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	reg := spec.NewRegistry()
	frag := reg.Register(spec.Invariant, "tree.rs:7", "balanced(self)")

	ctx := context.Background()
	if err := s.SaveFragments(ctx, []spec.Fragment{frag}); err != nil {
		t.Fatalf("Failed to save fragment: %v", err)
	}

	frag.Raw = "balanced(self) && sorted(self)"
	if err := s.SaveFragments(ctx, []spec.Fragment{frag}); err != nil {
		t.Fatalf("Failed to re-save fragment: %v", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count fragments: %v", err)
	}
	if count != 1 {
		t.Errorf("Re-saving the same identity grew the table to %d rows", count)
	}

	got, err := s.LoadFragments(ctx)
	if err != nil {
		t.Fatalf("Failed to load fragments: %v", err)
	}
	if got[0].Raw != frag.Raw {
		t.Errorf("Loaded raw text %q, want %q", got[0].Raw, frag.Raw)
	}
}

func TestLoadRejectsUnparseableIdentity(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	_, err = s.db.Exec(
		"INSERT INTO fragments (id, kind, source, raw) VALUES ('zz-not-an-id', 'requires', '', '')",
	)
	if err != nil {
		t.Fatalf("Failed to plant corrupt row: %v", err)
	}

	if _, err := s.LoadFragments(context.Background()); err == nil {
		t.Fatal("Load accepted a row with an unparseable identity")
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	var gen spec.IDGenerator
	_, err = s.db.Exec(
		"INSERT INTO fragments (id, kind, source, raw) VALUES (?, 'pledge', '', '')",
		gen.Generate().String(),
	)
	if err != nil {
		t.Fatalf("Failed to plant corrupt row: %v", err)
	}

	if _, err := s.LoadFragments(context.Background()); err == nil {
		t.Fatal("Load accepted a row with an unknown kind keyword")
	}
}
