// ═══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION: Saving and Loading the Index
// ═══════════════════════════════════════════════════════════════════════════════
// Why serialize?
// - Save an index to disk for persistence
// - Reopen it later and serve queries against it
//
// BINARY FORMAT:
// --------------
// Length-prefixed, little-endian. A leading u64 term count, then for
// each term:
//
//	[term_length: u64][term bytes][postings_length: u64][docID: u64][freq: u32]...
//
// followed by a trailing u64 max_doc_id. The codec's only contract is
// Decode(Encode(x)) == x structurally — this is the reference shape
// from the segment file layout, but any schema satisfying that
// round-trip is conforming.
// ═══════════════════════════════════════════════════════════════════════════════

package ember

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RoaringBitmap/roaring"
)

// Encode serializes idx to the reference binary segment format.
func Encode(idx *Index) ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	buf := new(bytes.Buffer)

	if err := binary.Write(buf, binary.LittleEndian, uint64(len(idx.postings))); err != nil {
		return nil, err
	}

	for term, pl := range idx.postings {
		if err := encodeTerm(buf, term, pl); err != nil {
			return nil, err
		}
	}

	if err := binary.Write(buf, binary.LittleEndian, idx.maxDocID); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeTerm(buf *bytes.Buffer, term string, pl *PostingsList) error {
	termBytes := []byte(term)
	if err := binary.Write(buf, binary.LittleEndian, uint64(len(termBytes))); err != nil {
		return err
	}
	if _, err := buf.Write(termBytes); err != nil {
		return err
	}

	if err := binary.Write(buf, binary.LittleEndian, uint64(pl.Len())); err != nil {
		return err
	}
	for i := 0; i < pl.Len(); i++ {
		docID, _ := pl.DocID(i)
		freq, _ := pl.Freq(i)
		if err := binary.Write(buf, binary.LittleEndian, docID); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, freq); err != nil {
			return err
		}
	}
	return nil
}

// Decode deserializes data, produced by Encode, back into an Index.
// On any malformed input it returns a *CodecError and discards the
// partially-decoded Index.
func Decode(data []byte) (*Index, error) {
	r := bytes.NewReader(data)

	numTerms, err := readUint64(r)
	if err != nil {
		return nil, &CodecError{Reason: "truncated header: missing term count"}
	}

	idx := NewIndex()
	for i := uint64(0); i < numTerms; i++ {
		term, pl, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		idx.postings[term] = pl
		bitmap := roaring.NewBitmap()
		for i := 0; i < pl.Len(); i++ {
			docID, _ := pl.DocID(i)
			bitmap.Add(uint32(docID))
		}
		idx.docFreq[term] = bitmap
	}

	maxDocID, err := readUint64(r)
	if err != nil {
		return nil, &CodecError{Reason: "truncated footer: missing max_doc_id"}
	}
	idx.maxDocID = maxDocID

	return idx, nil
}

func decodeTerm(r *bytes.Reader) (string, *PostingsList, error) {
	termLen, err := readUint64(r)
	if err != nil {
		return "", nil, &CodecError{Reason: "truncated term length prefix"}
	}

	if termLen > uint64(r.Len()) {
		return "", nil, &CodecError{Reason: fmt.Sprintf("term length %d overruns buffer", termLen)}
	}
	termBytes := make([]byte, termLen)
	if _, err := io.ReadFull(r, termBytes); err != nil {
		return "", nil, &CodecError{Reason: fmt.Sprintf("term length %d overruns buffer", termLen)}
	}

	numPostings, err := readUint64(r)
	if err != nil {
		return "", nil, &CodecError{Reason: "truncated postings length prefix"}
	}

	pl := NewPostingsList()
	for i := uint64(0); i < numPostings; i++ {
		docID, err := readUint64(r)
		if err != nil {
			return "", nil, &CodecError{Reason: "truncated posting: missing doc id"}
		}
		freq, err := readUint32(r)
		if err != nil {
			return "", nil, &CodecError{Reason: "truncated posting: missing freq"}
		}
		pl.Add(docID, freq)
	}

	return string(termBytes), pl, nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// ═══════════════════════════════════════════════════════════════════════════════
// SEGMENT FILE I/O
// ═══════════════════════════════════════════════════════════════════════════════

// ExportIndex writes the writer's Index to a single segment file named
// w.options.SegmentFileName inside w.dir. It assumes the directory
// already exists and is writable, reporting an *IOError otherwise.
func (w *IndexWriter) ExportIndex() error {
	data, err := Encode(w.index)
	if err != nil {
		return &IOError{Op: "encode index", Err: err}
	}

	path := filepath.Join(w.dir, w.options.SegmentFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: fmt.Sprintf("write segment %s", path), Err: err}
	}
	return nil
}

// LoadIndex reads a segment file from path and decodes it into an
// Index, for the do-query driver's "reopen later, serve queries"
// workflow.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: fmt.Sprintf("read segment %s", path), Err: err}
	}
	return Decode(data)
}
