package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/enrichment"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
)

func documentJSON(t *testing.T, metadata map[string]any) []byte {
	t.Helper()
	doc := ingestion.NewDocument(
		ingestion.Upload{FileName: "cv.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.7")},
		&extraction.Result{Text: "Jane Doe", Metadata: metadata},
	)
	data, err := doc.ToJSON()
	require.NoError(t, err)
	return data
}

func TestValidateDocument_Valid(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
	}{
		{
			name: "pdf",
			metadata: map[string]any{
				"format":    "pdf",
				"pages":     2,
				"encrypted": false,
				"links":     []enrichment.Link{{URL: "https://janedoe.dev", DisplayText: "Portfolio"}},
			},
		},
		{
			name: "docx",
			metadata: map[string]any{
				"format":      "docx",
				"warnings":    []string{"Unrecognised paragraph style: 'Fancy'"},
				"links_found": 1,
				"links":       []enrichment.Link{{URL: "https://example.com/resume"}},
			},
		},
		{name: "plain text", metadata: map[string]any{"format": "plain-text"}},
		{name: "latex", metadata: map[string]any{"format": "latex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateDocument(documentJSON(t, tt.metadata)))
		})
	}
}

func TestValidateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{
			name:  "unknown format",
			json:  string(documentJSON(t, map[string]any{"format": "rtf"})),
			field: "metadata.format",
		},
		{
			name:  "negative pages",
			json:  string(documentJSON(t, map[string]any{"format": "pdf", "pages": -1})),
			field: "metadata.pages",
		},
		{
			name:  "link without url",
			json:  string(documentJSON(t, map[string]any{"format": "pdf", "links": []map[string]string{{"display_text": "x"}}})),
			field: "metadata.links.0",
		},
		{
			name:  "missing fields",
			json:  `{"file_name": "cv.pdf", "metadata": {"format": "pdf"}}`,
			field: "(root)",
		},
		{
			name:  "bad hash",
			json:  `{"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "file_name": "cv.pdf", "size": 1, "metadata": {"format": "pdf"}, "timestamp": "2024-01-01T00:00:00Z", "hash": "abc"}`,
			field: "hash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.json))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T: %v", err, err)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument([]byte("{ invalid json }"))
	require.Error(t, err)
	_, isSchemaErr := err.(*SchemaLoadError)
	assert.True(t, isSchemaErr)
}

func TestValidateDocumentFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "cv.pdf.json")
	require.NoError(t, os.WriteFile(valid, documentJSON(t, map[string]any{"format": "pdf"}), 0644))
	assert.NoError(t, ValidateDocumentFile(valid))

	err := ValidateDocumentFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	schemaErr, ok := err.(*SchemaLoadError)
	require.True(t, ok)
	assert.Equal(t, "(string schema)", schemaErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}
