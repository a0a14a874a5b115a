// Command build-index reads NDJSON documents from stdin, one
// {"id": "...", "text": "..."} object per line, adds each to an
// ember.IndexWriter, and exports the result as a single segment file
// inside the directory given as the first argument.
//
// Usage:
//
//	build-index ./data < corpus.ndjson
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

type record struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// parseRecord decodes one NDJSON line into a record.
func parseRecord(line string) (record, error) {
	var rec record
	err := json.Unmarshal([]byte(line), &rec)
	return rec, err
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: build-index <index-dir> < corpus.ndjson")
		os.Exit(2)
	}
	indexDir := os.Args[1]

	writer := ember.NewIndexWriter(indexDir)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			slog.Error("failed to parse document", slog.String("line", line), slog.Any("error", err))
			os.Exit(1)
		}
		writer.Add(rec.Text)
	}
	if err := scanner.Err(); err != nil {
		slog.Error("failed to read stdin", slog.Any("error", err))
		os.Exit(1)
	}

	if err := writer.ExportIndex(); err != nil {
		slog.Error("failed to export index", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("index built", slog.Any("stats", writer.Index().Stats()))
}
