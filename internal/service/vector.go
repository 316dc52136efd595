package service

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ownitpro/omgsystems/internal/model"
)

// EmbeddingDim is the dimensionality of the toy hash embedding. Good enough
// for keyword-flavored retrieval over a few hundred marketing pages; not a
// semantic model.
const EmbeddingDim = 384

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Embed maps text to a normalized bag-of-words vector. Each token hashes to
// one of EmbeddingDim buckets.
func Embed(text string) []float64 {
	vec := make([]float64, EmbeddingDim)

	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		var h int32
		for _, r := range token {
			h = (h << 5) - h + int32(r)
		}
		idx := int(h) % EmbeddingDim
		if idx < 0 {
			idx = -idx
		}
		vec[idx]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

type vectorEntry struct {
	Chunk     model.KnowledgeChunk `json:"chunk"`
	Embedding []float64            `json:"embedding"`
}

// SearchResult is one scored chunk from the knowledge index.
type SearchResult struct {
	Chunk model.KnowledgeChunk `json:"chunk"`
	Score float64              `json:"score"`
}

// VectorStore is an in-memory vector index with JSON persistence. Writes
// happen at ingest time; portal traffic only reads.
type VectorStore struct {
	mu      sync.RWMutex
	entries []vectorEntry
}

func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

func (s *VectorStore) Add(chunk model.KnowledgeChunk, embedding []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, vectorEntry{Chunk: chunk, Embedding: embedding})
}

func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Search returns the top k chunks by cosine similarity to the query.
func (s *VectorStore) Search(query string, k int) []SearchResult {
	queryVec := Embed(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, SearchResult{
			Chunk: e.Chunk,
			Score: cosineSimilarity(queryVec, e.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

func (s *VectorStore) Save(path string) error {
	s.mu.RLock()
	data, err := json.Marshal(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal vector index: %w", err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write vector index: %w", err)
	}
	return nil
}

func (s *VectorStore) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read vector index: %w", err)
	}

	var entries []vectorEntry
	err = json.Unmarshal(data, &entries)
	if err != nil {
		return fmt.Errorf("failed to unmarshal vector index: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}
