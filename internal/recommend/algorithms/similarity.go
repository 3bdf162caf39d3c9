// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// DefaultSimilarityWorkers is the row fan-out used when no limit is given.
const DefaultSimilarityWorkers = 4

// Neighbor is one entry of an item's similarity row.
type Neighbor struct {
	ItemID int64
	Score  float64
}

// ItemSimilarity is a dense, symmetric item x item cosine similarity matrix
// addressed by item id.
//
// Scores lie in [0, 1]. The diagonal is 1 for items with a non-zero vector
// and 0 otherwise. An ItemSimilarity is immutable once built and is safe for
// concurrent readers.
type ItemSimilarity struct {
	items  []int64
	index  map[int64]int
	scores [][]float64
}

// newItemSimilarity wraps precomputed scores. items must be ascending and
// scores must be a len(items) x len(items) matrix.
func newItemSimilarity(items []int64, scores [][]float64) *ItemSimilarity {
	index := make(map[int64]int, len(items))
	for i, id := range items {
		index[id] = i
	}
	return &ItemSimilarity{items: items, index: index, scores: scores}
}

// ComputeItemSimilarity builds the cosine similarity matrix of every item in
// the user-item matrix.
//
// sim(i, j) = dot(v_i, v_j) / (|v_i| * |v_j|), and 0 when either norm is 0.
// Rows are computed concurrently with at most workers goroutines; only the
// upper triangle is computed and then mirrored so the result is exactly
// symmetric regardless of scheduling. Returns an empty matrix for an empty
// input.
func ComputeItemSimilarity(ctx context.Context, m UserItemMatrix, workers int) (*ItemSimilarity, error) {
	if workers <= 0 {
		workers = DefaultSimilarityWorkers
	}

	items := m.Items()
	vectors := m.itemVectors()

	n := len(items)
	vecs := make([]map[int64]float64, n)
	norms := make([]float64, n)
	for i, id := range items {
		vecs[i] = vectors[id]
		norms[i] = norm(vecs[i])
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := scores[i]
			if norms[i] > 0 {
				row[i] = 1
			}
			for j := i + 1; j < n; j++ {
				row[j] = cosine(vecs[i], vecs[j], norms[i], norms[j])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute item similarity: %w", err)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			scores[j][i] = scores[i][j]
		}
	}

	return newItemSimilarity(items, scores), nil
}

// Len returns the number of items in the matrix.
func (s *ItemSimilarity) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the item ids in ascending order.
func (s *ItemSimilarity) Items() []int64 {
	if s == nil {
		return nil
	}
	out := make([]int64, len(s.items))
	copy(out, s.items)
	return out
}

// Has reports whether the item has a row in the matrix.
func (s *ItemSimilarity) Has(itemID int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[itemID]
	return ok
}

// Score returns sim(a, b), 0 when either item is unknown.
func (s *ItemSimilarity) Score(a, b int64) float64 {
	if s == nil {
		return 0
	}
	i, ok := s.index[a]
	if !ok {
		return 0
	}
	j, ok := s.index[b]
	if !ok {
		return 0
	}
	return s.scores[i][j]
}

// Row returns the similarity row of an item ordered by score descending,
// ties by ascending item id. The item itself is included. Returns nil for
// unknown items.
func (s *ItemSimilarity) Row(itemID int64) []Neighbor {
	if s == nil {
		return nil
	}
	i, ok := s.index[itemID]
	if !ok {
		return nil
	}

	row := make([]Neighbor, len(s.items))
	for j, id := range s.items {
		row[j] = Neighbor{ItemID: id, Score: s.scores[i][j]}
	}
	sortNeighbors(row)
	return row
}

// similarityWire is the serialized form used by similarity caches.
type similarityWire struct {
	Items  []int64     `json:"items"`
	Scores [][]float64 `json:"scores"`
}

// MarshalJSON implements json.Marshaler.
func (s *ItemSimilarity) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(similarityWire{Items: s.items, Scores: s.scores})
}

// UnmarshalJSON implements json.Unmarshaler and rebuilds the id index.
func (s *ItemSimilarity) UnmarshalJSON(data []byte) error {
	var w similarityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.Scores) != len(w.Items) {
		return fmt.Errorf("similarity matrix has %d rows for %d items", len(w.Scores), len(w.Items))
	}
	for i, row := range w.Scores {
		if len(row) != len(w.Items) {
			return fmt.Errorf("similarity row %d has %d columns, want %d", i, len(row), len(w.Items))
		}
	}
	*s = *newItemSimilarity(w.Items, w.Scores)
	return nil
}

// cosine returns the cosine similarity of two sparse vectors with known norms.
// The result is clamped to [0, 1] to absorb floating point drift.
func cosine(a, b map[int64]float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}

	// Iterate the shorter vector
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for k, va := range a {
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}

	sim := dot / (normA * normB)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

func norm(v map[int64]float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// sortNeighbors orders by score descending, then item id ascending.
func sortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Score != ns[j].Score {
			return ns[i].Score > ns[j].Score
		}
		return ns[i].ItemID < ns[j].ItemID
	})
}
