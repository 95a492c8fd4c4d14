package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume
type Metadata struct {
	Source      string `json:"source,omitempty"`
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type"`
	Timestamp   string `json:"timestamp"` // RFC3339
	Hash        string `json:"hash"`      // SHA256 of the cleaned text
	Chars       int    `json:"chars"`
}

// NewMetadata creates metadata for cleaned text stamped with the current time
func NewMetadata(content, source, contentType string) *Metadata {
	return &Metadata{
		Source:      source,
		ContentType: contentType,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Hash:        computeHash(content),
		Chars:       utf8.RuneCountInString(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
