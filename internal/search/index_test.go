package search

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

var testFields = []string{"title", "description"}

func doc(ref, title, desc string) Document {
	return Document{Ref: ref, Fields: []Field{
		{Name: "title", Text: title},
		{Name: "description", Text: desc},
	}}
}

func fixture() []Document {
	return []Document{
		doc("1", "Red Apple", "A crisp fruit"),
		doc("2", "Banana", "Yellow and sweet"),
		doc("3", "Apple Pie", "Baked with apples, apples and more apples"),
		doc("4", "Running Shoes", "Light shoes for runners"),
	}
}

func engines() []Engine { return []Engine{EngineBleve, EngineBM25} }

func mustBuild(t *testing.T, e Engine, docs []Document) Index {
	t.Helper()
	ix, err := Build(e, testFields, docs)
	if err != nil {
		t.Fatalf("build %s: %v", e, err)
	}
	return ix
}

func TestSearch_Matches(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"banana", []string{"2"}},
		{"fruit", []string{"1"}},
		{"YELLOW", []string{"2"}},
		{"xyz123", []string{}},
		{"the", []string{}},
		{"   ", []string{}},
	}

	for _, e := range engines() {
		ix := mustBuild(t, e, fixture())
		for _, tc := range cases {
			t.Run(fmt.Sprintf("%s/%s", e, tc.query), func(t *testing.T) {
				got, err := ix.Search(context.Background(), tc.query)
				if err != nil {
					t.Fatalf("search: %v", err)
				}
				if got == nil {
					got = []string{}
				}
				if !reflect.DeepEqual(got, tc.want) {
					t.Fatalf("got=%v want=%v", got, tc.want)
				}
			})
		}
	}
}

func TestSearch_StemmedAndRanked(t *testing.T) {
	for _, e := range engines() {
		t.Run(string(e), func(t *testing.T) {
			ix := mustBuild(t, e, fixture())

			got, err := ix.Search(context.Background(), "apples")
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got=%v want refs 1 and 3", got)
			}
			if got[0] != "3" {
				t.Fatalf("best match=%s want=3 (got=%v)", got[0], got)
			}

			got, err = ix.Search(context.Background(), "run")
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if !reflect.DeepEqual(got, []string{"4"}) {
				t.Fatalf("got=%v want=[4]", got)
			}
		})
	}
}

func TestSearch_OrsTermsAcrossFields(t *testing.T) {
	for _, e := range engines() {
		t.Run(string(e), func(t *testing.T) {
			ix := mustBuild(t, e, fixture())

			got, err := ix.Search(context.Background(), "banana crisp")
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			seen := map[string]bool{}
			for _, r := range got {
				seen[r] = true
			}
			if len(got) != 2 || !seen["1"] || !seen["2"] {
				t.Fatalf("got=%v want refs 1 and 2", got)
			}
		})
	}
}

func TestSearch_Deterministic(t *testing.T) {
	for _, e := range engines() {
		t.Run(string(e), func(t *testing.T) {
			ix := mustBuild(t, e, fixture())
			first, err := ix.Search(context.Background(), "apple shoes")
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			for i := 0; i < 5; i++ {
				again, err := ix.Search(context.Background(), "apple shoes")
				if err != nil {
					t.Fatalf("search: %v", err)
				}
				if !reflect.DeepEqual(first, again) {
					t.Fatalf("run %d: got=%v want=%v", i, again, first)
				}
			}
		})
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	for _, e := range engines() {
		t.Run(string(e), func(t *testing.T) {
			ix := mustBuild(t, e, nil)
			if ix.Len() != 0 {
				t.Fatalf("len=%d", ix.Len())
			}
			got, err := ix.Search(context.Background(), "anything")
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("got=%v", got)
			}
		})
	}
}

func TestSearch_IgnoresUnindexedFields(t *testing.T) {
	docs := []Document{{Ref: "1", Fields: []Field{
		{Name: "title", Text: "Kettle"},
		{Name: "quantity", Text: "seventeen"},
	}}}

	for _, e := range engines() {
		t.Run(string(e), func(t *testing.T) {
			ix := mustBuild(t, e, docs)
			got, err := ix.Search(context.Background(), "seventeen")
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("got=%v", got)
			}
		})
	}
}

func TestSearch_Concurrent(t *testing.T) {
	for _, e := range engines() {
		t.Run(string(e), func(t *testing.T) {
			ix := mustBuild(t, e, fixture())

			errs := make(chan error, 16)
			for i := 0; i < cap(errs); i++ {
				go func() {
					got, err := ix.Search(context.Background(), "banana")
					if err == nil && (len(got) != 1 || got[0] != "2") {
						err = fmt.Errorf("got=%v", got)
					}
					errs <- err
				}()
			}
			for i := 0; i < cap(errs); i++ {
				if err := <-errs; err != nil {
					t.Fatalf("concurrent search: %v", err)
				}
			}
		})
	}
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{"": EngineBleve, "bleve": EngineBleve, "bm25": EngineBM25} {
		got, err := ParseEngine(in)
		if err != nil || got != want {
			t.Fatalf("ParseEngine(%q)=%q,%v want=%q", in, got, err, want)
		}
	}

	if _, err := ParseEngine("lucene"); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("err=%v want ErrUnknownEngine", err)
	}
	if _, err := Build("lucene", testFields, nil); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("err=%v want ErrUnknownEngine", err)
	}
}
