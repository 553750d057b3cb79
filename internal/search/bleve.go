package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/search/query"
)

type BleveIndex struct {
	idx    bleve.Index
	fields []string
	n      int
}

func NewBleveIndex(fields []string, docs []Document) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = en.AnalyzerName

	dm := bleve.NewDocumentMapping()
	for _, f := range fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = en.AnalyzerName
		fm.Store = false
		fm.IncludeInAll = false
		dm.AddFieldMappingsAt(f, fm)
	}
	im.DefaultMapping = dm

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("bleve: new index: %w", err)
	}

	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
	}

	b := idx.NewBatch()
	for _, d := range docs {
		body := make(map[string]any, len(d.Fields))
		for _, f := range d.Fields {
			if _, ok := allowed[f.Name]; ok {
				body[f.Name] = f.Text
			}
		}
		if err := b.Index(d.Ref, body); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("bleve: index %q: %w", d.Ref, err)
		}
	}
	if b.Size() == 0 {
		return &BleveIndex{idx: idx, fields: fields}, nil
	}
	if err := idx.Batch(b); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("bleve: batch: %w", err)
	}

	n, err := idx.DocCount()
	if err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("bleve: doc count: %w", err)
	}

	return &BleveIndex{idx: idx, fields: fields, n: int(n)}, nil
}

func (b *BleveIndex) Len() int { return b.n }

// Search ORs one match query per field, so a document matching any term in
// any field is a hit. Hits are ordered by score, then ref.
func (b *BleveIndex) Search(ctx context.Context, text string) ([]string, error) {
	if b.n == 0 || len(b.fields) == 0 {
		return nil, nil
	}

	disjuncts := make([]query.Query, 0, len(b.fields))
	for _, f := range b.fields {
		mq := query.NewMatchQuery(text)
		mq.SetField(f)
		disjuncts = append(disjuncts, mq)
	}

	req := bleve.NewSearchRequestOptions(query.NewDisjunctionQuery(disjuncts), b.n, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	res, err := b.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve: search: %w", err)
	}

	out := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}
