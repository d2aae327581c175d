package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const articleList = `[
	{"id": "a1", "title": "First", "content": "body one", "source_name": "Reuters"},
	{"id": "a2", "title": "Second", "content": "body two", "source_name": "BBC"}
]`

func TestParseList(t *testing.T) {
	s, err := Parse([]byte(articleList))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	a, err := s.GetByID("a2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if a.Title != "Second" || a.SourceName != "BBC" {
		t.Errorf("article = %+v", a)
	}
}

func TestParseObjectWrapper(t *testing.T) {
	s, err := Parse([]byte(`{"articles": ` + articleList + `}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestParseRejectsMissingID(t *testing.T) {
	if _, err := Parse([]byte(`[{"title": "No ID"}]`)); err == nil {
		t.Errorf("expected error for article without id")
	}
}

func TestParseRejectsDuplicateID(t *testing.T) {
	dup := `[{"id": "a1", "title": "x"}, {"id": "a1", "title": "y"}]`
	if _, err := Parse([]byte(dup)); err == nil {
		t.Errorf("expected error for duplicate ids")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s, err := Parse([]byte(articleList))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := s.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListPreservesFileOrder(t *testing.T) {
	s, err := Parse([]byte(articleList))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	articles := s.List()
	if articles[0].ID != "a1" || articles[1].ID != "a2" {
		t.Errorf("order = %v, %v", articles[0].ID, articles[1].ID)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	if err := os.WriteFile(path, []byte(articleList), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
