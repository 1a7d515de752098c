package graph

import "sort"

// HubNode is a node with high connectivity
type HubNode struct {
	Index    int     `json:"index"`
	Key      string  `json:"key"`
	Degree   int     `json:"degree"`
	Strength float64 `json:"strength"` // sum of incident edge strengths
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopologyReport summarizes the similarity graph
type TopologyReport struct {
	TotalNodes      int            `json:"total_nodes"`
	TotalEdges      int            `json:"total_edges"`
	NumClusters     int            `json:"num_clusters"`
	LargestCluster  int            `json:"largest_cluster"`
	OrphanCount     int            `json:"orphan_count"`
	OrphanKeys      []string       `json:"orphan_keys"`
	MeanStrength    float64        `json:"mean_strength"`
	MaxStrength     float64        `json:"max_strength"`
	DegreeHistogram []DegreeBucket `json:"degree_histogram"`
	Hubs            []HubNode      `json:"hubs"`
}

// ComputeTopology reports orphans, degree distribution, hubs and edge strengths
func ComputeTopology(g *Graph, hubThreshold, topN int) *TopologyReport {
	totalNodes := len(g.Nodes)
	totalEdges := len(g.Edges)

	if totalNodes == 0 {
		return &TopologyReport{
			DegreeHistogram: defaultHistogram(),
		}
	}

	degree := make([]int, totalNodes)
	strength := make([]float64, totalNodes)
	var sum, max float64
	for _, e := range g.Edges {
		degree[e.Source]++
		degree[e.Target]++
		strength[e.Source] += e.Strength
		strength[e.Target] += e.Strength
		sum += e.Strength
		if e.Strength > max {
			max = e.Strength
		}
	}
	mean := 0.0
	if totalEdges > 0 {
		mean = sum / float64(totalEdges)
	}

	// Orphans: degree == 0
	var orphans []string
	for i, n := range g.Nodes {
		if degree[i] == 0 {
			orphans = append(orphans, n.Item.Key)
		}
	}
	orphanCount := len(orphans)
	sort.Strings(orphans)
	if len(orphans) > topN {
		orphans = orphans[:topN]
	}

	// Degree histogram (log-scale buckets)
	buckets := [7]int{}
	for _, d := range degree {
		buckets[degreeBucket(d)]++
	}
	histogram := defaultHistogram()
	for i := range histogram {
		histogram[i].Count = buckets[i]
	}

	// Hubs: degree > threshold
	var hubs []HubNode
	for i, n := range g.Nodes {
		if degree[i] > hubThreshold {
			hubs = append(hubs, HubNode{
				Index:    i,
				Key:      n.Item.Key,
				Degree:   degree[i],
				Strength: strength[i],
			})
		}
	}
	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}

	sizes := ClusterSizes(g)

	return &TopologyReport{
		TotalNodes:      totalNodes,
		TotalEdges:      totalEdges,
		NumClusters:     len(sizes),
		LargestCluster:  sizes[0],
		OrphanCount:     orphanCount,
		OrphanKeys:      orphans,
		MeanStrength:    mean,
		MaxStrength:     max,
		DegreeHistogram: histogram,
		Hubs:            hubs,
	}
}

func sortDesc(xs []int) {
	sort.Sort(sort.Reverse(sort.IntSlice(xs)))
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	case degree <= 31:
		return 5
	default:
		return 6
	}
}
