package security

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WEBP decoder
)

// UploadKind selects which whitelist a file is checked against.
type UploadKind int

const (
	UploadResume UploadKind = iota
	UploadLogo
)

const (
	MaxResumeBytes = 5 << 20
	MaxLogoBytes   = 2 << 20

	MinLogoSide = 32
	MaxLogoSide = 4096
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Width        int    // Image width, logos only
	Height       int    // Image height, logos only
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed file types
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                                   // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},                           // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                                   // ZIP (PK..)
}

var allowedExtensions = map[UploadKind]map[string]bool{
	UploadResume: {".pdf": true, ".doc": true, ".docx": true},
	UploadLogo:   {".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true},
}

var strictMIMETypes = map[UploadKind]map[string]bool{
	UploadResume: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/zip":          true, // DOCX sniffs as zip
		"application/octet-stream": true, // DOC/DOCX; magic bytes already checked
	},
	UploadLogo: {
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	},
}

// ValidateUpload checks an outgoing upload before it is sent:
// 1. Extension whitelist for the upload kind
// 2. Size limit
// 3. Magic byte verification (content matches extension)
// 4. MIME sniffing whitelist
// 5. For logos, the image header must decode and have sane dimensions
func ValidateUpload(kind UploadKind, filename string, data []byte) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: http.DetectContentType(data),
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if !allowedExtensions[kind][ext] {
		result.Error = fmt.Sprintf("file extension not allowed: %s (allowed: %s)", ext, strings.Join(AllowedExtensions(kind), ", "))
		return result
	}

	limit := MaxResumeBytes
	if kind == UploadLogo {
		limit = MaxLogoBytes
	}
	if len(data) > limit {
		result.Error = fmt.Sprintf("file is too large: %d bytes (max %d)", len(data), limit)
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	if !strictMIMETypes[kind][result.DetectedMIME] {
		result.Error = "MIME type not allowed: " + result.DetectedMIME
		return result
	}

	if kind == UploadLogo {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			result.Error = "logo image could not be decoded"
			return result
		}
		result.Width, result.Height = cfg.Width, cfg.Height
		if cfg.Width < MinLogoSide || cfg.Height < MinLogoSide || cfg.Width > MaxLogoSide || cfg.Height > MaxLogoSide {
			result.Error = fmt.Sprintf("logo must be between %dpx and %dpx per side, got %dx%d", MinLogoSide, MaxLogoSide, cfg.Width, cfg.Height)
			return result
		}
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}

	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(kind UploadKind, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if !allowedExtensions[kind][ext] {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}

// AllowedExtensions returns the sorted extensions accepted for kind
func AllowedExtensions(kind UploadKind) []string {
	order := []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png", ".gif", ".webp"}
	var out []string
	for _, ext := range order {
		if allowedExtensions[kind][ext] {
			out = append(out, ext)
		}
	}
	return out
}
