package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

func TestNewDocument(t *testing.T) {
	upload := Upload{FileName: "cv.txt", MimeType: "text/plain", Data: []byte("raw bytes")}
	result := &extraction.Result{Text: "extracted text", Metadata: map[string]any{"format": "plain-text"}}

	doc := NewDocument(upload, result)

	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, "cv.txt", doc.FileName)
	assert.Equal(t, "text/plain", doc.MimeType)
	assert.Equal(t, 9, doc.Size)
	assert.Equal(t, "extracted text", doc.Text)
	assert.Equal(t, "plain-text", doc.Metadata["format"])
	assert.Equal(t, computeHash("extracted text"), doc.Hash)
	assert.Len(t, doc.Hash, 64) // SHA256 hex length

	_, err := time.Parse(time.RFC3339, doc.Timestamp)
	assert.NoError(t, err)
}

func TestNewDocument_NilMetadata(t *testing.T) {
	doc := NewDocument(Upload{FileName: "cv.txt"}, &extraction.Result{})
	assert.NotNil(t, doc.Metadata)
	assert.NotEqual(t, NewDocument(Upload{}, &extraction.Result{}).ID, doc.ID)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestDocument_ToJSON(t *testing.T) {
	doc := NewDocument(
		Upload{FileName: "cv.pdf", MimeType: "application/pdf", Data: []byte("%PDF")},
		&extraction.Result{Text: "Jane Doe", Metadata: map[string]any{"format": "pdf", "pages": 1}},
	)

	jsonBytes, err := doc.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, doc.ID.String(), decoded["id"])
	assert.Equal(t, "Jane Doe", decoded["text"])
	assert.Equal(t, float64(4), decoded["size"])
	assert.Equal(t, "pdf", decoded["metadata"].(map[string]any)["format"])
}

func TestDocument_ToJSON_EmptyTextKept(t *testing.T) {
	doc := NewDocument(Upload{FileName: "cv.txt"}, &extraction.Result{})

	jsonBytes, err := doc.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"text": ""`)
}

func TestDocument_MetaJSON_OmitsText(t *testing.T) {
	doc := NewDocument(
		Upload{FileName: "cv.txt", MimeType: "text/plain", Data: []byte("x")},
		&extraction.Result{Text: "secret body text", Metadata: map[string]any{"format": "plain-text"}},
	)

	jsonBytes, err := doc.MetaJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.NotContains(t, decoded, "text")
	assert.Equal(t, "cv.txt", decoded["file_name"])
	assert.Equal(t, doc.Hash, decoded["hash"])
	assert.NotContains(t, string(jsonBytes), "secret body text")
}
