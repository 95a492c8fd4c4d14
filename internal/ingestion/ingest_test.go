package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	doc *fetch.Document
	err error
}

func (s stubResolver) Resolve(context.Context, string) (*fetch.Document, error) {
	return s.doc, s.err
}

func TestIngest(t *testing.T) {
	resolver := stubResolver{doc: &fetch.Document{
		Source: "https://janedoe.dev/cv.md",
		Name:   "cv.md",
		Data:   []byte("# Jane Doe\n\n\n\nSkills:  Go"),
	}}

	text, meta, err := Ingest(context.Background(), resolver, "https://janedoe.dev/cv.md")
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\nSkills: Go", text)
	assert.Equal(t, TypeMarkdown, meta.ContentType)
	assert.Equal(t, "cv.md", meta.Name)
	assert.Equal(t, "https://janedoe.dev/cv.md", meta.Source)
	assert.Equal(t, computeHash(text), meta.Hash)
}

func TestIngest_ResolveError(t *testing.T) {
	_, _, err := Ingest(context.Background(), stubResolver{err: errors.New("boom")}, "x")
	assert.EqualError(t, err, "boom")
}

func TestIngestDocument_Unsupported(t *testing.T) {
	_, _, err := IngestDocument(&fetch.Document{Source: "scan.png", Name: "scan.png", ContentType: "image/png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "scan.png")
}
