// Package identity groups face embeddings from every candidate in a run
// into person clusters, so the same face is recognized across scenes.
// The clustering algorithm itself is pluggable; a minimal cosine
// DBSCAN is the default.
package identity

import (
	"fmt"
	"log/slog"
	"sort"

	"framepick/internal/frames"
	"framepick/internal/logging"
)

// Options controls clustering.
type Options struct {
	Eps        float64
	MinSamples int
}

// faceRef ties an embedding back to its candidate and face index.
type faceRef struct {
	candidateIndex int
	faceIndex      int
}

// ClusterSummary describes one identity cluster for reporting.
type ClusterSummary struct {
	Label   int   `json:"label"`
	Count   int   `json:"count"`
	Indices []int `json:"indices"`
}

// Assign clusters every face embedding across candidates (globally, not
// per scene) and writes labels back onto each candidate's
// ClusterLabels map. Faces without embeddings are skipped. Returns
// per-cluster summaries ordered by label, unclustered last.
func Assign(candidates []*frames.Candidate, clusterer Clusterer, opts Options, logger *slog.Logger) []ClusterSummary {
	logger = logging.NewComponentLogger(logger, "identity-clusterer")
	if clusterer == nil {
		clusterer = CosineDBSCAN{}
	}

	var embeddings [][]float64
	var refs []faceRef
	for ci, c := range candidates {
		for fi, face := range c.Faces {
			if len(face.Embedding) == 0 {
				continue
			}
			embeddings = append(embeddings, face.Embedding)
			refs = append(refs, faceRef{candidateIndex: ci, faceIndex: fi})
		}
	}
	if len(embeddings) == 0 {
		logger.Debug("no face embeddings to cluster")
		return nil
	}

	labels := clusterer.Cluster(embeddings, opts.Eps, opts.MinSamples)

	for i, ref := range refs {
		c := candidates[ref.candidateIndex]
		if c.ClusterLabels == nil {
			c.ClusterLabels = make(map[int]int)
		}
		c.ClusterLabels[ref.faceIndex] = labels[i]
	}

	summaries := summarize(labels)
	logger.Info("clustered face embeddings",
		slog.Int("embedding_count", len(embeddings)),
		slog.Int("cluster_count", clusteredCount(summaries)),
	)
	return summaries
}

func summarize(labels []int) []ClusterSummary {
	byLabel := make(map[int][]int)
	for i, label := range labels {
		byLabel[label] = append(byLabel[label], i)
	}
	ordered := make([]int, 0, len(byLabel))
	for label := range byLabel {
		ordered = append(ordered, label)
	}
	sort.Ints(ordered)

	summaries := make([]ClusterSummary, 0, len(ordered))
	// Unclustered (-1) sorts first; move it to the end for readability.
	for _, label := range ordered {
		if label == Unclustered {
			continue
		}
		summaries = append(summaries, ClusterSummary{Label: label, Count: len(byLabel[label]), Indices: byLabel[label]})
	}
	if indices, ok := byLabel[Unclustered]; ok {
		summaries = append(summaries, ClusterSummary{Label: Unclustered, Count: len(indices), Indices: indices})
	}
	return summaries
}

func clusteredCount(summaries []ClusterSummary) int {
	count := 0
	for _, s := range summaries {
		if s.Label != Unclustered {
			count++
		}
	}
	return count
}

// Name returns a human-readable cluster name.
func Name(label int) string {
	if label == Unclustered {
		return "unclustered"
	}
	return fmt.Sprintf("person_%d", label)
}
