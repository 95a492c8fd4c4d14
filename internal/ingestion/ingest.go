// Package ingestion turns resume documents (plain text, Markdown, HTML, PDF,
// DOCX) into cleaned plain text ready for analysis.
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/skillbyte/internal/fetch"
)

// Resolver loads a document from a source string
type Resolver interface {
	Resolve(ctx context.Context, source string) (*fetch.Document, error)
}

// Ingest resolves source and extracts its text.
func Ingest(ctx context.Context, resolver Resolver, source string) (string, *Metadata, error) {
	doc, err := resolver.Resolve(ctx, source)
	if err != nil {
		return "", nil, err
	}
	return IngestDocument(doc)
}

// IngestDocument extracts the text of an already loaded document.
func IngestDocument(doc *fetch.Document) (string, *Metadata, error) {
	contentType := DetectType(doc.ContentType, doc.Name)
	text, err := ExtractText(contentType, doc.Name, doc.Data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract text from %s: %w", doc.Source, err)
	}

	meta := NewMetadata(text, doc.Source, contentType)
	meta.Name = doc.Name
	log.Printf("[ingestion] %s: %s, %d chars", doc.Source, contentType, meta.Chars)
	return text, meta, nil
}
