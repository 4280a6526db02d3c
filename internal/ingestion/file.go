package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

// TextExtractor is the extraction entry point IngestFile drives
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType, fileName string) (*extraction.Result, error)
}

// IngestFile reads a resume file, guards it, extracts its text and returns the
// resulting Document. The MIME type is sniffed from content and is advisory only;
// the file extension selects the extractor.
func IngestFile(ctx context.Context, extractor TextExtractor, path string, limits Limits) (*Document, error) {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, &UploadRejectedError{FileName: name, Message: fmt.Sprintf("%s is a directory", path)}
	}
	if limits.MaxFileSize > 0 && info.Size() > limits.MaxFileSize {
		return nil, &UploadRejectedError{
			FileName: name,
			Message:  fmt.Sprintf("File too large: %d bytes exceeds the %d byte limit", info.Size(), limits.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	upload := Upload{
		FileName: name,
		MimeType: mimetype.Detect(data).String(),
		Data:     data,
	}
	if err := CheckUpload(upload, limits); err != nil {
		return nil, err
	}

	result, err := extractor.ExtractText(ctx, upload.Data, upload.MimeType, upload.FileName)
	if err != nil {
		return nil, err
	}

	if err := CheckText(upload.FileName, result.Text, limits.MinTextLength); err != nil {
		return nil, err
	}

	return NewDocument(upload, result), nil
}

// OutputPaths returns the text and metadata paths WriteOutput uses for doc
func OutputPaths(outDir string, doc *Document) (textPath, metaPath string) {
	base := filepath.Base(doc.FileName)
	return filepath.Join(outDir, base+".txt"), filepath.Join(outDir, base+".meta.json")
}

// WriteOutput writes the extracted text and metadata to output files
func WriteOutput(outDir string, doc *Document) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath, metaPath := OutputPaths(outDir, doc)

	if err := os.WriteFile(textPath, []byte(doc.Text), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	metaJSON, err := doc.MetaJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
