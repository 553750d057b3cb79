// Package search builds read-only full-text indexes over catalog documents
// and resolves free-text queries to ranked document references.
package search

import (
	"context"
	"errors"
	"fmt"
)

type Engine string

const (
	EngineBleve Engine = "bleve"
	EngineBM25  Engine = "bm25"
)

var ErrUnknownEngine = errors.New("unknown search engine")

type Field struct {
	Name string
	Text string
}

// Document is one indexable unit. Ref is returned by Search verbatim.
type Document struct {
	Ref    string
	Fields []Field
}

// Index is immutable once built and safe for concurrent Search calls.
// Search returns refs ordered best match first; no match is an empty
// result, not an error.
type Index interface {
	Search(ctx context.Context, query string) ([]string, error)
	Len() int
}

func ParseEngine(s string) (Engine, error) {
	switch e := Engine(s); e {
	case "":
		return EngineBleve, nil
	case EngineBleve, EngineBM25:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
	}
}

// Build consumes every document in one pass. fields names the indexed
// fields; document fields outside that set are ignored.
func Build(engine Engine, fields []string, docs []Document) (Index, error) {
	switch engine {
	case EngineBleve, "":
		return NewBleveIndex(fields, docs)
	case EngineBM25:
		return NewBM25Index(fields, docs), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

type emptyIndex struct{}

// Empty returns an index that matches nothing.
func Empty() Index { return emptyIndex{} }

func (emptyIndex) Search(context.Context, string) ([]string, error) { return nil, nil }
func (emptyIndex) Len() int                                         { return 0 }
