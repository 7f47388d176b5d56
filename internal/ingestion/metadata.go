package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes an ingested resume document.
type Metadata struct {
	URL        string `json:"url,omitempty"`
	SourceType string `json:"source_type,omitempty"` // text, markdown, html, url
	Timestamp  string `json:"timestamp"`             // RFC3339
	Hash       string `json:"hash"`                  // SHA256 hex digest of cleaned text
	Length     int    `json:"length"`                // cleaned text length in characters
}

// NewMetadata creates Metadata for cleaned content with current timestamp.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Length:    len(content),
	}
}

// computeHash computes the SHA256 hash of content as a hex string.
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
