package fetch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/artistgraph/pkg/graph"
	"github.com/matzehuels/artistgraph/pkg/integrations"
)

type fakeGenres struct {
	canonical map[string]string
	genres    map[string][]string
	err       error
}

func (f fakeGenres) LookupGenres(_ context.Context, seed string) (string, []string, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	name, ok := f.canonical[seed]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", integrations.ErrNotFound, seed)
	}
	return name, f.genres[name], nil
}

type fakeCredits struct {
	credits map[string][]string
	fail    map[string]error
	calls   *[]string
}

func (f fakeCredits) LookupCredits(_ context.Context, seed string) ([]string, error) {
	if f.calls != nil {
		*f.calls = append(*f.calls, seed)
	}
	if err := f.fail[seed]; err != nil {
		return nil, err
	}
	c, ok := f.credits[seed]
	if !ok {
		return nil, integrations.ErrNotFound
	}
	return c, nil
}

func newSources() (fakeGenres, fakeCredits) {
	g := fakeGenres{
		canonical: map[string]string{
			"lamp":     "Lamp",
			"kirinji":  "KIRINJI",
			"fishmans": "Fishmans",
		},
		genres: map[string][]string{
			"Lamp":     {"shibuya-kei", "city pop"},
			"KIRINJI":  {"city pop"},
			"Fishmans": {"dub"},
		},
	}
	c := fakeCredits{credits: map[string][]string{
		"lamp":     {"Lamp", "KIRINJI", "Lamp"},
		"fishmans": {"Fishmans", "UA", "KIRINJI"},
	}}
	return g, c
}

func TestFetch(t *testing.T) {
	gs, cs := newSources()
	f := New(gs, cs, nil)

	res, err := f.Fetch(context.Background(), []string{"lamp", "kirinji", "fishmans"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if want := []string{"Lamp", "KIRINJI", "Fishmans"}; !slices.Equal(res.Genres.Keys(), want) {
		t.Errorf("genre keys = %v, want canonical names in seed order %v", res.Genres.Keys(), want)
	}
	if got, _ := res.Collaborations.Get("Lamp"); !slices.Equal(got, []string{"KIRINJI"}) {
		t.Errorf("Lamp credits = %v, want self-credits removed", got)
	}
	if got, _ := res.Collaborations.Get("Fishmans"); !slices.Equal(got, []string{"UA", "KIRINJI"}) {
		t.Errorf("Fishmans credits = %v", got)
	}
	if res.Collaborations.Has("KIRINJI") {
		t.Error("artist without credit results should have no collaboration entry")
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", res.Skipped)
	}
}

func TestFetch_SkipsUnknownSeed(t *testing.T) {
	gs, cs := newSources()
	calls := []string{}
	cs.calls = &calls
	f := New(gs, cs, nil)

	res, err := f.Fetch(context.Background(), []string{"lamp", "nobody"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !slices.Equal(res.Skipped, []string{"nobody"}) {
		t.Errorf("Skipped = %v", res.Skipped)
	}
	if res.Genres.Has("nobody") {
		t.Error("skipped seed should not become a node")
	}
	if slices.Contains(calls, "nobody") {
		t.Error("credit source queried for a skipped seed")
	}
}

func TestFetch_CreditFailureContinues(t *testing.T) {
	gs, cs := newSources()
	cs.fail = map[string]error{"lamp": errors.New("connection reset")}
	f := New(gs, cs, nil)

	res, err := f.Fetch(context.Background(), []string{"lamp", "fishmans"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !res.Genres.Has("Lamp") {
		t.Error("seed with failed credit lookup should keep its genres")
	}
	if res.Collaborations.Has("Lamp") {
		t.Error("failed credit lookup should add no collaborations")
	}
	if !res.Collaborations.Has("Fishmans") {
		t.Error("later seeds should still be fetched")
	}
	if res.CreditErrors != 1 {
		t.Errorf("CreditErrors = %d, want 1", res.CreditErrors)
	}
}

func TestFetch_GenreErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	f := New(fakeGenres{err: boom}, nil, nil)

	_, err := f.Fetch(context.Background(), []string{"lamp"})
	if !errors.Is(err, boom) {
		t.Errorf("Fetch() error = %v, want boom", err)
	}
}

func TestFetch_Cancelled(t *testing.T) {
	gs, cs := newSources()
	f := New(gs, cs, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Fetch(ctx, []string{"lamp"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestFetch_NilCredits(t *testing.T) {
	gs, _ := newSources()
	f := New(gs, nil, nil)

	res, err := f.Fetch(context.Background(), []string{"lamp"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if res.Collaborations.Len() != 0 {
		t.Errorf("Collaborations = %d entries, want 0", res.Collaborations.Len())
	}
}

func TestBuild(t *testing.T) {
	gs, cs := newSources()
	f := New(gs, cs, nil)

	g, _, err := f.Build(context.Background(), []string{"lamp", "kirinji", "fishmans"})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	e, ok := g.Edge("Lamp", "KIRINJI")
	if !ok || e.Kind != graph.KindCollaboration {
		t.Errorf("Lamp-KIRINJI = %+v, %v; want collaboration overriding genre", e, ok)
	}
	if g.Has("UA") {
		t.Error("dangling collaborator became a node")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "timeout", 100, "timeout"},
		{"ascii", "connection refused", 10, "connection"},
		{"rune boundary", "ab椎名", 5, "ab椎"},
		{"mid rune", "ab椎名", 4, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("%s: truncate(%q, %d) = %q, want %q", tt.name, tt.in, tt.n, got, tt.want)
		}
	}

	long := truncate("lookup: "+strings.Repeat("椎名林檎", 20), 100)
	if !utf8.ValidString(long) || len(long) > 100 {
		t.Errorf("truncate produced %d bytes, valid UTF-8 = %v", len(long), utf8.ValidString(long))
	}
}
