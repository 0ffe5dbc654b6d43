package security

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestValidateResume(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%%EOF\n")

	tests := []struct {
		name  string
		file  string
		data  []byte
		valid bool
		error string
	}{
		{"pdf", "cv.pdf", pdf, true, ""},
		{"upper case extension", "CV.PDF", pdf, true, ""},
		{"no extension", "cv", pdf, false, "file has no extension"},
		{"image as resume", "cv.png", pdf, false, "file extension not allowed: .png (allowed: .pdf, .doc, .docx)"},
		{"renamed text", "cv.pdf", []byte("hello, this is not a pdf"), false, "file content does not match extension"},
		{"too small", "cv.pdf", []byte("%P"), false, "file content does not match extension"},
		{"too large", "cv.pdf", append([]byte("%PDF"), make([]byte, MaxResumeBytes)...), false, "file is too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateUpload(UploadResume, tt.file, tt.data)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.error != "" {
				assert.Contains(t, res.Error, tt.error)
			}
		})
	}
}

func TestValidateLogo(t *testing.T) {
	res := ValidateUpload(UploadLogo, "logo.png", pngBytes(t, 64, 64))
	require.True(t, res.Valid, res.Error)
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, "image/png", res.DetectedMIME)

	res = ValidateUpload(UploadLogo, "logo.png", pngBytes(t, 16, 16))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "got 16x16")

	res = ValidateUpload(UploadLogo, "logo.pdf", []byte("%PDF-1.4"))
	assert.False(t, res.Valid)

	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	res = ValidateUpload(UploadLogo, "logo.png", header)
	assert.False(t, res.Valid)
	assert.Equal(t, "logo image could not be decoded", res.Error)
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, ValidateFileExtension(UploadLogo, "a.webp"))
	assert.Error(t, ValidateFileExtension(UploadLogo, "a.svg"))
	assert.Error(t, ValidateFileExtension(UploadResume, "README"))
	assert.Equal(t, []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}, AllowedExtensions(UploadLogo))
}
