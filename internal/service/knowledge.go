package service

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ownitpro/omgsystems/internal/markdown"
	"github.com/ownitpro/omgsystems/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxChunkChars bounds chunk size so retrieved snippets stay answer-sized.
const maxChunkChars = 500

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

var titleCaser = cases.Title(language.English)

// knowledgeTypeByDir maps content subdirectories to knowledge document types.
var knowledgeTypeByDir = map[string]string{
	"automations": model.KnowledgeTypeAutomation,
	"faq":         model.KnowledgeTypeFAQ,
	"industries":  model.KnowledgeTypeIndustry,
	"apps":        model.KnowledgeTypeApp,
}

// KnowledgeService builds and queries the chatbot knowledge index from the
// markdown content directory.
type KnowledgeService struct {
	parser      *markdown.Parser
	store       *VectorStore
	contentPath string
}

func NewKnowledgeService(store *VectorStore, contentPath string) *KnowledgeService {
	return &KnowledgeService{
		parser:      markdown.NewParser(),
		store:       store,
		contentPath: contentPath,
	}
}

// Ingest walks the content directory, chunks every markdown file, and
// indexes the chunks. Files that fail to parse are logged and skipped so one
// bad page never empties the index.
func (s *KnowledgeService) Ingest() error {
	var docCount, chunkCount int

	err := filepath.WalkDir(s.contentPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read content file", "path", path, "error", err)
			return nil
		}

		doc, chunks, err := s.index(path, source)
		if err != nil {
			slog.Warn("failed to index content file", "path", path, "error", err)
			return nil
		}

		docCount++
		chunkCount += chunks
		slog.Debug("indexed knowledge document", "title", doc.Title, "type", doc.Type, "chunks", chunks)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk content directory: %w", err)
	}

	slog.Info("knowledge index built", "documents", docCount, "chunks", chunkCount)
	return nil
}

func (s *KnowledgeService) index(path string, source []byte) (*model.KnowledgeDocument, int, error) {
	text, meta, err := s.parser.PlainText(source)
	if err != nil {
		return nil, 0, err
	}

	doc := &model.KnowledgeDocument{
		ID:      uuid.New().String(),
		Title:   s.title(path, meta),
		Content: text,
		Type:    s.docType(path, meta),
		URL:     s.url(path, meta),
	}

	chunks := chunkText(text, maxChunkChars)
	for _, content := range chunks {
		s.store.Add(model.KnowledgeChunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    content,
			Metadata: map[string]string{
				"title": doc.Title,
				"url":   doc.URL,
				"type":  doc.Type,
			},
		}, Embed(content))
	}

	return doc, len(chunks), nil
}

// Search returns the top k chunks for a free-form question.
func (s *KnowledgeService) Search(query string, k int) []SearchResult {
	return s.store.Search(query, k)
}

func (s *KnowledgeService) title(path string, meta map[string]any) string {
	if t, ok := meta["title"].(string); ok && t != "" {
		return t
	}

	name := strings.TrimSuffix(filepath.Base(path), ".md")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(name)
}

func (s *KnowledgeService) docType(path string, meta map[string]any) string {
	if t, ok := meta["type"].(string); ok && t != "" {
		return t
	}

	rel, err := filepath.Rel(s.contentPath, path)
	if err == nil {
		dir := strings.Split(filepath.ToSlash(rel), "/")[0]
		if t, ok := knowledgeTypeByDir[dir]; ok {
			return t
		}
	}
	return model.KnowledgeTypePage
}

func (s *KnowledgeService) url(path string, meta map[string]any) string {
	if u, ok := meta["url"].(string); ok && u != "" {
		return u
	}

	rel, err := filepath.Rel(s.contentPath, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return "/" + strings.TrimSuffix(filepath.ToSlash(rel), ".md")
}

// chunkText splits prose into sentence-aligned chunks of at most max
// characters. A single sentence longer than max becomes its own chunk.
func chunkText(text string, max int) []string {
	var chunks []string
	var b strings.Builder

	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if b.Len() > 0 && b.Len()+len(sentence)+1 > max {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}

	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
