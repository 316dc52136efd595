package model

// KnowledgeDocument is one source document in the chatbot knowledge base:
// a marketing page, automation description, FAQ entry, or industry page.
type KnowledgeDocument struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Type     string            `json:"type"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

const (
	KnowledgeTypePage       = "page"
	KnowledgeTypeAutomation = "automation"
	KnowledgeTypeFAQ        = "faq"
	KnowledgeTypeIndustry   = "industry"
	KnowledgeTypeApp        = "app"
)

// KnowledgeChunk is a searchable slice of a knowledge document. The embedding
// is held separately by the vector store.
type KnowledgeChunk struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"documentId"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
