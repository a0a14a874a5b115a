// Package ember implements the core of a minimal full-text search engine:
// an in-memory inverted index, a document-at-a-time disjunctive scorer,
// a small query AST/parser, and a segment codec.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index is like the index at the back of a book, but for search
// engines.
//
// Example: Given these documents:
//
//	Doc 1: "the quick brown fox"
//	Doc 2: "the lazy dog"
//	Doc 3: "quick brown dogs"
//
// The inverted index maps each term to the documents that contain it:
//
//	"the"    → [Doc1, Doc2]
//	"quick"  → [Doc1, Doc3]
//	"brown"  → [Doc1, Doc3]
//	"fox"    → [Doc1]
//	"lazy"   → [Doc2]
//	"dog"    → [Doc2]
//	"dogs"   → [Doc3]
//
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// PostingsList is a pair of equal-length ordered sequences: document
// identifiers and the term frequency within each of those documents.
//
// Invariant: len(docs) == len(freqs). Invariant (write path): entries
// are appended in strictly increasing docs order, since the Index
// assigns document identifiers monotonically and touches a term at
// most once per document.
type PostingsList struct {
	docs  []uint64
	freqs []uint32
}

// NewPostingsList returns an empty PostingsList.
func NewPostingsList() *PostingsList {
	return &PostingsList{}
}

// Len returns the number of postings.
func (pl *PostingsList) Len() int {
	return len(pl.docs)
}

// Add appends a (docID, freq) pair. Callers must append in strictly
// increasing docID order; Add does not verify this.
func (pl *PostingsList) Add(docID uint64, freq uint32) {
	pl.docs = append(pl.docs, docID)
	pl.freqs = append(pl.freqs, freq)
}

// DocID returns the i-th document identifier, or false if i is out of
// range.
func (pl *PostingsList) DocID(i int) (uint64, bool) {
	if i < 0 || i >= len(pl.docs) {
		return 0, false
	}
	return pl.docs[i], true
}

// Freq returns the i-th term frequency, or false if i is out of range.
func (pl *PostingsList) Freq(i int) (uint32, bool) {
	if i < 0 || i >= len(pl.freqs) {
		return 0, false
	}
	return pl.freqs[i], true
}

// IndexStats reports corpus-level numbers derived from an Index.
type IndexStats struct {
	Terms    int
	MaxDocID uint64
}

// ═══════════════════════════════════════════════════════════════════════════════
// CORE DATA STRUCTURE: Index
// ═══════════════════════════════════════════════════════════════════════════════
// Index maps term → PostingsList, plus a monotonically assigned doc id
// counter. It also keeps a roaring bitmap per term purely as a fast
// document-frequency side index; the PostingsList remains the single
// source of truth for search and the only thing the codec persists.
// ═══════════════════════════════════════════════════════════════════════════════
type Index struct {
	mu sync.RWMutex

	postings map[string]*PostingsList
	docFreq  map[string]*roaring.Bitmap

	maxDocID uint64
}

// NewIndex returns a new empty Index.
func NewIndex() *Index {
	return &Index{
		postings: make(map[string]*PostingsList),
		docFreq:  make(map[string]*roaring.Bitmap),
	}
}

// Add tokenizes text, assigns it the next monotonic document id, and
// appends one posting per distinct term to that term's PostingsList.
//
// Add requires exclusive access to the Index; concurrent callers must
// serialize externally or rely on the internal lock, which it takes
// for the duration of the call.
func (idx *Index) Add(text string) uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	tokens := Analyze(text)

	// Per-document term frequencies, so each term is touched at most
	// once per document. Map iteration order below never affects
	// external state beyond what the invariants permit (the
	// PostingsList for a term gets exactly one new posting either
	// way).
	freqs := make(map[string]uint32, len(tokens))
	for _, tok := range tokens {
		freqs[tok.Text]++
	}

	docID := idx.maxDocID + 1
	for term, freq := range freqs {
		pl, exists := idx.postings[term]
		if !exists {
			pl = NewPostingsList()
			idx.postings[term] = pl
		}
		pl.Add(docID, freq)

		bitmap, exists := idx.docFreq[term]
		if !exists {
			bitmap = roaring.NewBitmap()
			idx.docFreq[term] = bitmap
		}
		bitmap.Add(uint32(docID))
	}
	idx.maxDocID = docID

	return docID
}

// GetPostingsList returns the PostingsList for term, or false if the
// term was never indexed. A lookup miss is not an error.
func (idx *Index) GetPostingsList(term string) (*PostingsList, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pl, ok := idx.postings[term]
	return pl, ok
}

// DocFrequency returns the number of documents containing term, read
// in O(1) from the roaring-bitmap side index. It is corpus statistics,
// not a scoring feature, and carries no weight in Searcher.Search.
func (idx *Index) DocFrequency(term string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bitmap, ok := idx.docFreq[term]
	if !ok {
		return 0
	}
	return int(bitmap.GetCardinality())
}

// MaxDocID returns the most recently assigned document id, or 0 if no
// document has been added yet.
func (idx *Index) MaxDocID() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.maxDocID
}

// Stats returns corpus-level numbers for this Index.
func (idx *Index) Stats() IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return IndexStats{
		Terms:    len(idx.postings),
		MaxDocID: idx.maxDocID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// INDEXWRITER: Builder Facade
// ═══════════════════════════════════════════════════════════════════════════════

// IndexWriterOptions configures an IndexWriter's on-disk segment.
type IndexWriterOptions struct {
	// SegmentFileName is the file written inside Dir by ExportIndex.
	SegmentFileName string
}

// DefaultIndexWriterOptions returns the standard IndexWriter options.
func DefaultIndexWriterOptions() IndexWriterOptions {
	return IndexWriterOptions{
		SegmentFileName: "segment.doc",
	}
}

// IndexWriter wraps an Index, exposing the builder surface used by the
// build-index driver: Add documents, then ExportIndex to persist the
// result as a single segment file.
type IndexWriter struct {
	dir     string
	index   *Index
	options IndexWriterOptions
}

// NewIndexWriter creates an IndexWriter that will persist into dir.
// The directory is assumed to already exist and be writable; creating
// it is a collaborator concern.
func NewIndexWriter(dir string) *IndexWriter {
	return NewIndexWriterWithOptions(dir, DefaultIndexWriterOptions())
}

// NewIndexWriterWithOptions is NewIndexWriter with explicit options.
func NewIndexWriterWithOptions(dir string, options IndexWriterOptions) *IndexWriter {
	return &IndexWriter{
		dir:     dir,
		index:   NewIndex(),
		options: options,
	}
}

// Add delegates to the underlying Index.
func (w *IndexWriter) Add(text string) uint64 {
	return w.index.Add(text)
}

// Index returns the IndexWriter's underlying Index.
func (w *IndexWriter) Index() *Index {
	return w.index
}
