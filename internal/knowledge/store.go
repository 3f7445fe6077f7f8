// Package knowledge loads the static reference documents the assistant draws its context from.
package knowledge

import "github.com/jkruckivey/assessments/internal/core"

// Store is the read-only set of loaded documents. It is built once by Load and
// is safe for concurrent readers since nothing mutates it afterwards.
type Store struct {
	docs  []core.Document
	byKey map[string]int
}

func NewStore(docs []core.Document) *Store {
	s := &Store{
		docs:  make([]core.Document, 0, len(docs)),
		byKey: make(map[string]int, len(docs)),
	}
	for _, d := range docs {
		if _, dup := s.byKey[d.Key]; dup {
			continue
		}
		s.byKey[d.Key] = len(s.docs)
		s.docs = append(s.docs, d)
	}
	return s
}

// Documents returns the documents in load order. Callers must not modify the slice.
func (s *Store) Documents() []core.Document {
	if s == nil {
		return nil
	}
	return s.docs
}

func (s *Store) Get(key string) (core.Document, bool) {
	if s == nil {
		return core.Document{}, false
	}
	i, ok := s.byKey[key]
	if !ok {
		return core.Document{}, false
	}
	return s.docs[i], true
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

func (s *Store) Keys() []string {
	keys := make([]string, 0, s.Len())
	for _, d := range s.Documents() {
		keys = append(keys, d.Key)
	}
	return keys
}
