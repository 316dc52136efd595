package service

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ownitpro/omgsystems/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed(t *testing.T) {
	a := Embed("invoices and receipts")
	b := Embed("invoices and receipts")
	c := Embed("kubernetes cluster upgrades")

	require.Len(t, a, EmbeddingDim)
	assert.Equal(t, a, b, "embedding must be deterministic")

	var norm float64
	for _, v := range a {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "embedding must be L2 normalized")

	assert.Greater(t, cosineSimilarity(a, b), cosineSimilarity(a, c))
}

func TestEmbedEmpty(t *testing.T) {
	vec := Embed("")
	require.Len(t, vec, EmbeddingDim)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestChunkText(t *testing.T) {
	text := "First sentence here. Second sentence here. Third sentence here."
	chunks := chunkText(text, 45)

	require.Len(t, chunks, 2)
	assert.Equal(t, "First sentence here. Second sentence here.", chunks[0])
	assert.Equal(t, "Third sentence here.", chunks[1])
}

func TestChunkTextLongSentence(t *testing.T) {
	long := strings.Repeat("word ", 40) + "end."
	chunks := chunkText(long, 50)

	// a single oversized sentence still becomes one chunk
	require.Len(t, chunks, 1)
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Empty(t, chunkText("", 100))
	assert.Empty(t, chunkText("   ", 100))
}

func TestVectorStoreSearch(t *testing.T) {
	store := NewVectorStore()
	for _, content := range []string{
		"Automate invoice collection with scheduled reminders.",
		"Frequently asked questions about billing and plans.",
		"SecureVault keeps client documents encrypted at rest.",
	} {
		store.Add(model.KnowledgeChunk{ID: content[:8], Content: content}, Embed(content))
	}

	results := store.Search("how are documents encrypted", 2)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Chunk.Content, "encrypted")
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestVectorStoreSaveLoad(t *testing.T) {
	store := NewVectorStore()
	chunk := model.KnowledgeChunk{
		ID:      "chunk-1",
		Content: "Billing runs on the first of the month.",
		Metadata: map[string]string{
			"title": "Billing FAQ",
			"url":   "/faq/billing",
		},
	}
	store.Add(chunk, Embed(chunk.Content))

	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, store.Save(path))

	loaded := NewVectorStore()
	require.NoError(t, loaded.Load(path))
	require.Equal(t, 1, loaded.Len())

	results := loaded.Search("billing", 1)
	require.Len(t, results, 1)
	assert.Equal(t, "chunk-1", results[0].Chunk.ID)
	assert.Equal(t, "Billing FAQ", results[0].Chunk.Metadata["title"])
}

func TestKnowledgeIngest(t *testing.T) {
	content := t.TempDir()
	writeContentFile(t, content, "faq/billing-cycle.md", `---
title: Billing Cycle
---

Invoices are issued on the first of every month. Payment is due within fourteen days.
`)
	writeContentFile(t, content, "automations/reminder-emails.md", `Reminder emails go out three days before a document request expires.`)

	store := NewVectorStore()
	svc := NewKnowledgeService(store, content)
	require.NoError(t, svc.Ingest())
	require.Equal(t, 2, store.Len())

	results := svc.Search("when are invoices issued", 1)
	require.Len(t, results, 1)
	assert.Equal(t, "Billing Cycle", results[0].Chunk.Metadata["title"])
	assert.Equal(t, model.KnowledgeTypeFAQ, results[0].Chunk.Metadata["type"])
	assert.Equal(t, "/faq/billing-cycle", results[0].Chunk.Metadata["url"])
}

func TestKnowledgeIngestDefaults(t *testing.T) {
	content := t.TempDir()
	writeContentFile(t, content, "misc/getting-started.md", `Welcome to the portal.`)

	store := NewVectorStore()
	svc := NewKnowledgeService(store, content)
	require.NoError(t, svc.Ingest())

	results := svc.Search("welcome portal", 1)
	require.Len(t, results, 1)
	// no frontmatter and an unknown directory fall back to derived values
	assert.Equal(t, "Getting Started", results[0].Chunk.Metadata["title"])
	assert.Equal(t, model.KnowledgeTypePage, results[0].Chunk.Metadata["type"])
}

func writeContentFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}
