// ═══════════════════════════════════════════════════════════════════════════════
// DAAT SEARCH: Document-at-a-Time Disjunctive Merge
// ═══════════════════════════════════════════════════════════════════════════════
// Searcher drives a min-heap of per-term cursors through every
// PostingsList matched by a query's tokens, one document at a time, in
// ascending document-id order.
//
// VISUAL EXAMPLE:
// ---------------
// Query: "one two", two cursors:
//
//	cursor(one) → doc 1, doc 2
//	cursor(two) → doc 1, doc 2
//
// The merge visits doc 1 (both cursors agree, score 2.0), then doc 2
// (both cursors agree again, score 2.0), then both cursors are
// exhausted and the heap empties.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"container/heap"
	"log/slog"
	"sort"
)

// ScoredDoc pairs a document id with its accumulated score.
type ScoredDoc struct {
	DocID uint64
	Score float64
}

// cursor is a read-only view into one PostingsList plus a current
// position. It borrows into the Index for the duration of a single
// Search call and never outlives it.
type cursor struct {
	pl       *PostingsList
	position int
	nextDoc  uint64
	ok       bool // false once exhausted: the "None" sentinel
}

// newCursor returns a cursor positioned at pl's first posting, or
// (nil, false) if pl is empty.
func newCursor(pl *PostingsList) (*cursor, bool) {
	doc, ok := pl.DocID(0)
	if !ok {
		return nil, false
	}
	return &cursor{pl: pl, position: 0, nextDoc: doc, ok: true}, true
}

// advance moves the cursor to its next posting. It returns false and
// leaves nextDoc untouched once exhausted.
func (c *cursor) advance() bool {
	doc, ok := c.pl.DocID(c.position + 1)
	if !ok {
		return false
	}
	c.position++
	c.nextDoc = doc
	return true
}

// less implements the cursor ordering from the spec: compare by
// nextDoc, with an exhausted cursor (ok == false) sorting after any
// live one.
func (c *cursor) less(other *cursor) bool {
	if c.ok != other.ok {
		return c.ok // live cursors sort before exhausted ones
	}
	if !c.ok {
		return false
	}
	return c.nextDoc < other.nextDoc
}

// cursorHeap is a min-heap of cursors ordered by cursor.less,
// implementing container/heap.Interface — the idiomatic stdlib choice
// for a disjunction merge (the same structure a DAAT merge in any
// production Go search engine reaches for).
type cursorHeap []*cursor

func (h cursorHeap) Len() int            { return len(h) }
func (h cursorHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h cursorHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x interface{}) { *h = append(*h, x.(*cursor)) }
func (h *cursorHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SearcherOptions configures a Searcher's ambient behavior.
type SearcherOptions struct {
	Logger *slog.Logger
}

// DefaultSearcherOptions returns the standard Searcher options,
// logging to slog.Default().
func DefaultSearcherOptions() SearcherOptions {
	return SearcherOptions{Logger: slog.Default()}
}

// Searcher runs DAAT disjunctive queries against an Index. An Index
// may be shared immutably by any number of Searcher views.
type Searcher struct {
	index   *Index
	options SearcherOptions
}

// NewSearcher returns a Searcher over index.
func NewSearcher(index *Index) *Searcher {
	return NewSearcherWithOptions(index, DefaultSearcherOptions())
}

// NewSearcherWithOptions is NewSearcher with explicit options.
func NewSearcherWithOptions(index *Index, options SearcherOptions) *Searcher {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Searcher{index: index, options: options}
}

// Search tokenizes text, builds one cursor per matched token
// (duplicate tokens push duplicate cursors), and merges them
// document-at-a-time to produce the top-k ScoredDocs.
//
// Score for a document is the count of cursor matches against it — the
// number of query terms, with multiplicity, whose postings list
// contains that document. This is a fixed +1-per-cursor placeholder; a
// richer model (BM25, TF·IDF) is a future extension.
//
// Edge cases: k == 0 returns an empty result; a query with no known
// term returns an empty result; a k larger than the match count
// returns every match.
func (s *Searcher) Search(text string, k int) []ScoredDoc {
	if k <= 0 {
		return nil
	}

	tokens := Analyze(text)
	h := make(cursorHeap, 0, len(tokens))
	for _, tok := range tokens {
		pl, ok := s.index.GetPostingsList(tok.Text)
		if !ok {
			continue
		}
		c, ok := newCursor(pl)
		if !ok {
			continue
		}
		h = append(h, c)
	}
	heap.Init(&h)

	if h.Len() == 0 {
		return nil
	}

	s.options.Logger.Debug("search", slog.String("query", text), slog.Int("cursors", h.Len()))

	var matched []ScoredDoc
	for h.Len() > 0 {
		cMin := heap.Pop(&h).(*cursor)
		docID := cMin.nextDoc
		score := 1.0

		if cMin.advance() {
			heap.Push(&h, cMin)
		}

		for h.Len() > 0 && h[0].ok && h[0].nextDoc == docID {
			c := heap.Pop(&h).(*cursor)
			score += 1.0
			if c.advance() {
				heap.Push(&h, c)
			}
		}

		matched = append(matched, ScoredDoc{DocID: docID, Score: score})
	}

	// Result ordering commits to score-descending, doc-id-ascending
	// (spec Open Question 1). The DAAT pass above already visits every
	// candidate document exactly once, so a plain sort of the matched
	// slice is simpler than maintaining a second bounded max-heap.
	sort.Slice(matched, func(i, j int) bool {
		return lessScoredDoc(matched[j], matched[i])
	})

	if k < len(matched) {
		matched = matched[:k]
	}
	return matched
}

// lessScoredDoc orders a before b: lower score first, ties broken by
// higher doc id first. Search sorts with the arguments swapped, which
// yields score-descending, doc-id-ascending order directly. A NaN
// score compares as less than everything, per spec.
func lessScoredDoc(a, b ScoredDoc) bool {
	if isNaN(a.Score) || isNaN(b.Score) {
		if isNaN(a.Score) && isNaN(b.Score) {
			return false
		}
		return isNaN(a.Score)
	}
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.DocID > b.DocID
}

func isNaN(f float64) bool {
	return f != f
}
