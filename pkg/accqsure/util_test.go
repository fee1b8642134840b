package accqsure

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareDocumentContentsText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "procedure.txt")
	require.NoError(t, os.WriteFile(path, []byte("Step 1: calibrate the instrument."), 0o644))

	contents, err := PrepareDocumentContents(path)
	require.NoError(t, err)
	assert.Equal(t, "procedure", contents.Title)
	assert.Equal(t, FileFormatText, contents.Type)
	assert.Equal(t, "text/plain", contents.MIMEType)

	decoded, err := base64.StdEncoding.DecodeString(contents.Base64Contents)
	require.NoError(t, err)
	assert.Equal(t, "Step 1: calibrate the instrument.", string(decoded))
}

func TestPrepareDocumentContentsPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n%EOF"), 0o644))

	contents, err := PrepareDocumentContents(path)
	require.NoError(t, err)
	assert.Equal(t, "report", contents.Title)
	assert.Equal(t, FileFormatPDF, contents.Type)
	assert.Equal(t, "application/pdf", contents.MIMEType)
}

func TestPrepareDocumentContentsRejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	// PNG magic bytes.
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, 0o644))

	_, err := PrepareDocumentContents(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file type")
	assert.Contains(t, err.Error(), "image/png")
}

func TestPrepareDocumentContentsMissingFile(t *testing.T) {
	_, err := PrepareDocumentContents(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
