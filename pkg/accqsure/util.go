package accqsure

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileFormat is the service-side identifier for an uploadable file type.
type FileFormat string

const (
	FileFormatDocx FileFormat = "docx"
	FileFormatText FileFormat = "text"
	FileFormatXlsx FileFormat = "xlsx"
	FileFormatCSV  FileFormat = "csv"
	FileFormatPDF  FileFormat = "pdf"
)

// allowedMIMETypes maps detected MIME types to upload formats.
var allowedMIMETypes = map[string]FileFormat{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FileFormatDocx,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       FileFormatXlsx,

	"application/pdf":  FileFormatPDF,
	"application/json": FileFormatText,
	"text/plain":       FileFormatText,
	"text/markdown":    FileFormatText,
	"text/csv":         FileFormatCSV,
}

// DocumentContents is a file prepared for upload or conversion.
type DocumentContents struct {
	Title          string
	Type           FileFormat
	MIMEType       string
	Base64Contents string
}

// PrepareDocumentContents sniffs a file's MIME type, checks it against the
// allow-list, and returns the base64-encoded contents with a title derived
// from the file name.
func PrepareDocumentContents(path string) (*DocumentContents, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type of %s: %w", path, err)
	}

	// DetectFile includes parameters such as charset; match on the bare type.
	mimeType := detected.String()
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	format, ok := allowedMIMETypes[mimeType]
	if !ok {
		allowed := make([]string, 0, len(allowedMIMETypes))
		for k := range allowedMIMETypes {
			allowed = append(allowed, k)
		}
		sort.Strings(allowed)
		return nil, fmt.Errorf(
			"invalid file type: detected MIME type %q not in allowed types: %s",
			mimeType, strings.Join(allowed, ", "),
		)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	return &DocumentContents{
		Title:          title,
		Type:           format,
		MIMEType:       mimeType,
		Base64Contents: base64.StdEncoding.EncodeToString(contents),
	}, nil
}
