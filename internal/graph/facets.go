package graph

import "github.com/tidwall/btree"

// FacetValue is one selectable tag with the number of items carrying it
type FacetValue struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// FacetSet lists the selectable tags of each filter dimension in tag order
type FacetSet struct {
	Categories []FacetValue `json:"categories"`
	Functions  []FacetValue `json:"functions"`
	Audiences  []FacetValue `json:"audiences"`
}

// Facets counts tag usage per dimension across items
func Facets(items []*Item) FacetSet {
	var cats, funcs, auds btree.Map[string, int]
	for _, it := range items {
		countInto(&cats, it.Categories)
		countInto(&funcs, it.Functions)
		countInto(&auds, it.Audiences)
	}
	return FacetSet{
		Categories: facetValues(&cats),
		Functions:  facetValues(&funcs),
		Audiences:  facetValues(&auds),
	}
}

func countInto(m *btree.Map[string, int], tags TagSet) {
	for t := range tags {
		n, _ := m.Get(t)
		m.Set(t, n+1)
	}
}

func facetValues(m *btree.Map[string, int]) []FacetValue {
	out := make([]FacetValue, 0, m.Len())
	m.Scan(func(tag string, count int) bool {
		out = append(out, FacetValue{Tag: tag, Count: count})
		return true
	})
	return out
}
