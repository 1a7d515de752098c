package graph

import "sort"

// TagSet is an unordered set of short labels
type TagSet map[string]struct{}

// NewTagSet builds a set from a list of labels, dropping empty strings
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is in the set
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// IntersectCount returns |s ∩ other|
func (s TagSet) IntersectCount(other TagSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if _, ok := large[t]; ok {
			n++
		}
	}
	return n
}

// Sorted returns the tags in ascending order (for deterministic output)
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Item is an immutable classified episode record. The core never mutates it.
type Item struct {
	Key           string
	Guest         string
	Categories    TagSet
	Functions     TagSet
	Audiences     TagSet
	Takeaways     []string
	Notes         string
	TranscriptRef string
}

// SharedCount sums the per-dimension tag intersections of two items.
// Each dimension is intersected independently; the result is not a union.
func SharedCount(a, b *Item) int {
	return a.Categories.IntersectCount(b.Categories) +
		a.Functions.IntersectCount(b.Functions) +
		a.Audiences.IntersectCount(b.Audiences)
}
