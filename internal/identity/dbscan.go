package identity

import "math"

// Unclustered is the label DBSCAN assigns to noise points.
const Unclustered = -1

// Clusterer groups embeddings into identity clusters. Implementations
// return one label per embedding; Unclustered marks noise.
type Clusterer interface {
	Cluster(embeddings [][]float64, eps float64, minSamples int) []int
}

// CosineDBSCAN is a minimal density-based clusterer over cosine
// distance, sufficient for grouping face embeddings per video.
type CosineDBSCAN struct{}

// Cluster runs DBSCAN with the given eps radius and minimum neighbor
// count (the point itself included, matching the reference semantics).
func (CosineDBSCAN) Cluster(embeddings [][]float64, eps float64, minSamples int) []int {
	n := len(embeddings)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Unclustered
	}
	if n == 0 || minSamples < 1 {
		return labels
	}

	distances := cosineDistanceMatrix(embeddings)
	visited := make([]bool, n)
	clusterID := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(distances, i, eps)
		if len(neighbors) < minSamples {
			continue
		}

		labels[i] = clusterID
		// Expand the cluster over density-reachable points.
		queue := append([]int(nil), neighbors...)
		for head := 0; head < len(queue); head++ {
			j := queue[head]
			if !visited[j] {
				visited[j] = true
				jNeighbors := regionQuery(distances, j, eps)
				if len(jNeighbors) >= minSamples {
					queue = append(queue, jNeighbors...)
				}
			}
			if labels[j] == Unclustered {
				labels[j] = clusterID
			}
		}
		clusterID++
	}
	return labels
}

func regionQuery(distances [][]float64, i int, eps float64) []int {
	var neighbors []int
	for j, d := range distances[i] {
		if d <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

func cosineDistanceMatrix(embeddings [][]float64) [][]float64 {
	n := len(embeddings)
	norms := make([]float64, n)
	for i, e := range embeddings {
		norms[i] = vectorNorm(e)
	}

	distances := make([][]float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := cosineDistance(embeddings[i], embeddings[j], norms[i], norms[j])
			distances[i][j] = d
			distances[j][i] = d
		}
	}
	return distances
}

func cosineDistance(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 1
	}
	dims := len(a)
	if len(b) < dims {
		dims = len(b)
	}
	dot := 0.0
	for k := 0; k < dims; k++ {
		dot += a[k] * b[k]
	}
	return 1 - dot/(normA*normB)
}

func vectorNorm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
