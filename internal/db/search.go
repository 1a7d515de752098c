package db

import (
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "is": true,
	"it": true, "and": true, "or": true, "with": true, "from": true,
	"by": true, "this": true, "that": true, "as": true, "be": true,
}

// searchTerms splits on whitespace, trims punctuation, and drops stopwords
// and words shorter than 3 chars.
func searchTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(query) {
		trimmed := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		if len(trimmed) < 3 {
			continue
		}
		if stopwords[strings.ToLower(trimmed)] {
			continue
		}
		terms = append(terms, trimmed)
	}
	return terms
}

// BuildFTSQuery preprocesses a natural language query for FTS5.
// Each term is quoted so hyphens and colons in episode names stay literal.
func BuildFTSQuery(query string) string {
	terms := searchTerms(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " OR ")
}

// SearchEpisodes returns episodes matching any query term, via the FTS index
// when present and a LIKE scan over key, guest and notes otherwise.
// Returns an empty slice if the preprocessed query is empty.
func (d *DB) SearchEpisodes(query string) ([]Episode, error) {
	terms := searchTerms(query)
	if len(terms) == 0 {
		return []Episode{}, nil
	}

	if d.fts {
		episodes, err := d.queryEpisodes(`
			SELECT e.key, e.ordinal, e.guest, e.categories, e.functions, e.audiences,
			       e.takeaways, e.notes, e.transcript_ref, e.imported_at
			FROM episodes e
			JOIN episodes_fts fts ON e.key = fts.key
			WHERE episodes_fts MATCH ?1
			ORDER BY rank
		`, BuildFTSQuery(query))
		// Gracefully handle a missing FTS table
		if err == nil || !strings.Contains(err.Error(), "no such table") {
			return episodes, err
		}
	}

	var clauses []string
	var args []any
	for _, t := range terms {
		clauses = append(clauses, `(key LIKE ? ESCAPE '\' OR guest LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\')`)
		p := "%" + escapeLike(t) + "%"
		args = append(args, p, p, p)
	}
	return d.queryEpisodes(`SELECT `+episodeColumns+` FROM episodes WHERE `+
		strings.Join(clauses, " OR ")+` ORDER BY ordinal`, args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
