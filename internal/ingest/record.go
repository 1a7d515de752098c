// Package ingest decodes line-delimited JSON episode records into typed items.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"episodemap/galaxy/internal/graph"
)

// maxLineBytes bounds one record; transcripts are referenced, not embedded
const maxLineBytes = 4 << 20

// Record is one line of the episode stream. Older batches only carry
// custom_id and metadata_tags; newer ones carry the three tag dimensions.
type Record struct {
	EpisodeName  string   `json:"episode_name"`
	CustomID     string   `json:"custom_id"`
	Guest        string   `json:"guest_name"`
	Categories   []string `json:"categories"`
	Functions    []string `json:"functions"`
	Audiences    []string `json:"audiences"`
	MetadataTags []string `json:"metadata_tags"`
	Takeaways    []string `json:"key_takeaways"`
	Notes        string   `json:"notes"`
	Transcript   string   `json:"transcript_ref"`
	FilePath     string   `json:"file_path"`
}

// LineError records a line that could not be decoded
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result is the outcome of decoding a stream
type Result struct {
	Items   []*graph.Item
	Skipped []LineError
}

// Decode reads one JSON record per line. Blank lines are ignored, malformed
// lines are skipped and reported, and duplicate keys keep the first record.
// Only a read failure of the underlying stream is returned as an error.
func Decode(r io.Reader) (*Result, error) {
	res := &Result{}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			res.Skipped = append(res.Skipped, LineError{Line: lineNum, Err: err})
			continue
		}

		it := rec.Item(lineNum)
		if seen[it.Key] {
			res.Skipped = append(res.Skipped, LineError{Line: lineNum, Err: fmt.Errorf("duplicate episode %q", it.Key)})
			continue
		}
		seen[it.Key] = true
		res.Items = append(res.Items, it)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading records: %w", err)
	}
	return res, nil
}

// Item normalizes the record: missing tag fields become empty sets, tags are
// trimmed, and a record without a key is named after its line number.
func (r Record) Item(lineNum int) *graph.Item {
	key := strings.TrimSpace(r.EpisodeName)
	if key == "" {
		key = strings.TrimSpace(r.CustomID)
	}
	if key == "" {
		key = fmt.Sprintf("episode-%d", lineNum)
	}

	categories := r.Categories
	if categories == nil {
		categories = r.MetadataTags
	}

	transcript := r.Transcript
	if transcript == "" {
		transcript = r.FilePath
	}

	return &graph.Item{
		Key:           key,
		Guest:         strings.TrimSpace(r.Guest),
		Categories:    graph.NewTagSet(trimAll(categories)...),
		Functions:     graph.NewTagSet(trimAll(r.Functions)...),
		Audiences:     graph.NewTagSet(trimAll(r.Audiences)...),
		Takeaways:     r.Takeaways,
		Notes:         r.Notes,
		TranscriptRef: transcript,
	}
}

func trimAll(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
