package db

import (
	"encoding/json"

	"episodemap/galaxy/internal/graph"
)

// Episode represents a row in the episodes table
type Episode struct {
	Key           string   `json:"key"`
	Ordinal       int      `json:"ordinal"` // position in the imported stream
	Guest         string   `json:"guest"`
	Categories    []string `json:"categories"`
	Functions     []string `json:"functions"`
	Audiences     []string `json:"audiences"`
	Takeaways     []string `json:"takeaways"`
	Notes         string   `json:"notes"`
	TranscriptRef string   `json:"transcript_ref"`
	ImportedAt    int64    `json:"imported_at"` // Unix millis
}

// Item converts the row into the immutable graph item
func (e *Episode) Item() *graph.Item {
	return &graph.Item{
		Key:           e.Key,
		Guest:         e.Guest,
		Categories:    graph.NewTagSet(e.Categories...),
		Functions:     graph.NewTagSet(e.Functions...),
		Audiences:     graph.NewTagSet(e.Audiences...),
		Takeaways:     e.Takeaways,
		Notes:         e.Notes,
		TranscriptRef: e.TranscriptRef,
	}
}

// EpisodeFromItem converts a graph item into a row at the given ordinal
func EpisodeFromItem(it *graph.Item, ordinal int) Episode {
	takeaways := it.Takeaways
	if takeaways == nil {
		takeaways = []string{}
	}
	return Episode{
		Key:           it.Key,
		Ordinal:       ordinal,
		Guest:         it.Guest,
		Categories:    it.Categories.Sorted(),
		Functions:     it.Functions.Sorted(),
		Audiences:     it.Audiences.Sorted(),
		Takeaways:     takeaways,
		Notes:         it.Notes,
		TranscriptRef: it.TranscriptRef,
	}
}

// decodeList parses a JSON string column; malformed or empty text yields an empty list
func decodeList(raw string) []string {
	var out []string
	if raw == "" || json.Unmarshal([]byte(raw), &out) != nil || out == nil {
		return []string{}
	}
	return out
}

func encodeList(list []string) string {
	if list == nil {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
