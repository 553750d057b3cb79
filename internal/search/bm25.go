package search

import (
	"context"
	"math"
	"sort"
)

const (
	k1 = 1.2
	b  = 0.75
)

type posting struct {
	doc int
	tf  int
}

type fieldIndex struct {
	postings map[string][]posting
	lengths  []int
	avgLen   float64
}

// BM25Index scores each field independently with BM25 and sums the field
// scores per document.
type BM25Index struct {
	refs   []string
	df     map[string]int
	fields []fieldIndex
}

func NewBM25Index(fields []string, docs []Document) *BM25Index {
	ix := &BM25Index{
		refs:   make([]string, len(docs)),
		df:     make(map[string]int),
		fields: make([]fieldIndex, len(fields)),
	}

	slot := make(map[string]int, len(fields))
	for i, f := range fields {
		slot[f] = i
		ix.fields[i] = fieldIndex{
			postings: make(map[string][]posting),
			lengths:  make([]int, len(docs)),
		}
	}

	for d, doc := range docs {
		ix.refs[d] = doc.Ref

		seen := make(map[string]struct{})
		for _, f := range doc.Fields {
			i, ok := slot[f.Name]
			if !ok {
				continue
			}
			terms := Analyze(f.Text)
			fi := &ix.fields[i]
			fi.lengths[d] += len(terms)

			tf := make(map[string]int, len(terms))
			for _, t := range terms {
				tf[t]++
			}
			for t, n := range tf {
				fi.postings[t] = append(fi.postings[t], posting{doc: d, tf: n})
				seen[t] = struct{}{}
			}
		}
		for t := range seen {
			ix.df[t]++
		}
	}

	for i := range ix.fields {
		fi := &ix.fields[i]
		total := 0
		for _, l := range fi.lengths {
			total += l
		}
		if len(docs) > 0 {
			fi.avgLen = float64(total) / float64(len(docs))
		}
	}

	return ix
}

func (ix *BM25Index) Len() int { return len(ix.refs) }

// Search ranks by descending score; equal scores keep insertion order.
func (ix *BM25Index) Search(_ context.Context, text string) ([]string, error) {
	terms := Analyze(text)
	if len(terms) == 0 || len(ix.refs) == 0 {
		return nil, nil
	}

	uniq := make(map[string]struct{}, len(terms))
	scores := make(map[int]float64)
	for _, t := range terms {
		if _, dup := uniq[t]; dup {
			continue
		}
		uniq[t] = struct{}{}

		df := ix.df[t]
		if df == 0 {
			continue
		}
		idf := computeIDF(len(ix.refs), df)
		for i := range ix.fields {
			fi := &ix.fields[i]
			for _, p := range fi.postings[t] {
				scores[p.doc] += idf * computeTFNorm(float64(p.tf), float64(fi.lengths[p.doc]), fi.avgLen)
			}
		}
	}

	docs := make([]int, 0, len(scores))
	for d := range scores {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		si, sj := scores[docs[i]], scores[docs[j]]
		if si != sj {
			return si > sj
		}
		return docs[i] < docs[j]
	})

	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = ix.refs[d]
	}
	return out, nil
}

func computeIDF(totalDocs, docFreq int) float64 {
	return math.Log(1 + (float64(totalDocs)-float64(docFreq)+0.5)/(float64(docFreq)+0.5))
}

func computeTFNorm(tf, docLen, avgLen float64) float64 {
	if avgLen == 0 {
		return 0
	}
	return (tf * (k1 + 1)) / (tf + k1*(1-b+b*docLen/avgLen))
}
