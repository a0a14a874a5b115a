// Command do-query loads a segment file given as the first argument
// and runs NDJSON queries from stdin against it, one
// {"query": "...", "tags": [...]} object per line. For each query it
// prints the quoted query text and then the number of results, with at
// most the top 10 results retrieved per query.
//
// Usage:
//
//	do-query ./data/segment.doc < queries.ndjson
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/emberidx/ember"
)

const topK = 10

type record struct {
	Query string   `json:"query"`
	Tags  []string `json:"tags"`
}

// parseRecord decodes one NDJSON line into a record.
func parseRecord(line string) (record, error) {
	var rec record
	err := json.Unmarshal([]byte(line), &rec)
	return rec, err
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: do-query <segment-path> < queries.ndjson")
		os.Exit(2)
	}
	segmentPath := os.Args[1]

	idx, err := ember.LoadIndex(segmentPath)
	if err != nil {
		slog.Error("failed to load index", slog.Any("error", err))
		os.Exit(1)
	}
	searcher := ember.NewSearcher(idx)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			slog.Error("failed to parse query", slog.String("line", line), slog.Any("error", err))
			os.Exit(1)
		}

		results := searcher.Search(rec.Query, topK)
		fmt.Printf("%q\n", rec.Query)
		fmt.Println(len(results))
	}
	if err := scanner.Err(); err != nil {
		slog.Error("failed to read stdin", slog.Any("error", err))
		os.Exit(1)
	}
}
