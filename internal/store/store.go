package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/newsproof/newsproof/internal/model"
)

// ErrNotFound is returned when no article has the requested id
var ErrNotFound = errors.New("store: article not found")

// Store is a read-only view over a JSON article file. The whole file
// is loaded at open; the pipeline never writes articles back.
type Store struct {
	byID  map[string]model.Article
	order []string
}

// Open loads a store from a JSON file holding either a bare array of
// articles or an object with an "articles" key.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	return Parse(data)
}

// Parse builds a store from raw JSON
func Parse(data []byte) (*Store, error) {
	articles, err := parseArticles(data)
	if err != nil {
		return nil, err
	}

	s := &Store{
		byID:  make(map[string]model.Article, len(articles)),
		order: make([]string, 0, len(articles)),
	}
	for _, a := range articles {
		if a.ID == "" {
			return nil, fmt.Errorf("store: article %q has no id", a.Title)
		}
		if _, exists := s.byID[a.ID]; exists {
			return nil, fmt.Errorf("store: duplicate article id %q", a.ID)
		}
		s.byID[a.ID] = a
		s.order = append(s.order, a.ID)
	}
	return s, nil
}

func parseArticles(data []byte) ([]model.Article, error) {
	var asList []model.Article
	if err := json.Unmarshal(data, &asList); err == nil {
		return asList, nil
	}

	var asObject struct {
		Articles []model.Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return nil, fmt.Errorf("store: parse articles: %w", err)
	}
	if asObject.Articles == nil {
		return nil, errors.New("store: no articles field in object")
	}
	return asObject.Articles, nil
}

// GetByID returns the article with the given id
func (s *Store) GetByID(id string) (model.Article, error) {
	a, ok := s.byID[id]
	if !ok {
		return model.Article{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a, nil
}

// List returns all articles in file order
func (s *Store) List() []model.Article {
	articles := make([]model.Article, 0, len(s.order))
	for _, id := range s.order {
		articles = append(articles, s.byID[id])
	}
	return articles
}

// Len returns the number of stored articles
func (s *Store) Len() int {
	return len(s.order)
}
