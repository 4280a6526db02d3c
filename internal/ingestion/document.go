package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

// Document is the record produced for one ingested resume file
type Document struct {
	ID        uuid.UUID      `json:"id"`
	FileName  string         `json:"file_name"`
	MimeType  string         `json:"mime_type,omitempty"` // As declared or sniffed; advisory
	Size      int            `json:"size"`                // Bytes of the original upload
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp string         `json:"timestamp"` // RFC3339 format
	Hash      string         `json:"hash"`      // SHA256 hex digest of Text
}

// NewDocument creates a Document for an upload and its extraction result
func NewDocument(u Upload, result *extraction.Result) *Document {
	metadata := result.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Document{
		ID:        uuid.New(),
		FileName:  u.FileName,
		MimeType:  u.MimeType,
		Size:      len(u.Data),
		Text:      result.Text,
		Metadata:  metadata,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(result.Text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals the Document, text included, to pretty-printed JSON
func (d *Document) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document to JSON: %w", err)
	}
	return jsonBytes, nil
}

// MetaJSON marshals everything except the text body to pretty-printed JSON
func (d *Document) MetaJSON() ([]byte, error) {
	view := struct {
		*Document
		Text string `json:"text,omitempty"`
	}{Document: d}

	jsonBytes, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
