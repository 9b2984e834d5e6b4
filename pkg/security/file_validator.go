package security

import (
	"bytes"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// signature is a magic byte sequence expected at a fixed offset.
type signature struct {
	offset int
	magic  []byte
}

// Magic byte signatures for allowed reference upload types
var magicBytes = map[string][]signature{
	".jpg":  {{0, []byte{0xFF, 0xD8, 0xFF}}},
	".jpeg": {{0, []byte{0xFF, 0xD8, 0xFF}}},
	".png":  {{0, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}},
	".gif":  {{0, []byte("GIF87a")}, {0, []byte("GIF89a")}},
	".webp": {{0, []byte("RIFF")}},
	".pdf":  {{0, []byte("%PDF")}},
	".doc":  {{0, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}}, // OLE Compound Document
	".docx": {{0, []byte{0x50, 0x4B, 0x03, 0x04}}},                         // ZIP (PK..)
	".zip":  {{0, []byte{0x50, 0x4B, 0x03, 0x04}}},
	".mp4":  {{4, []byte("ftyp")}},
	".mov":  {{4, []byte("ftyp")}, {4, []byte("moov")}, {4, []byte("wide")}, {4, []byte("mdat")}},
	".txt":  {}, // no magic bytes, rely on MIME detection
}

// Allowed MIME types. application/octet-stream is deliberately absent.
var strictMIMETypes = map[string]bool{
	// Images
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	// Documents
	"application/pdf":           true,
	"application/msword":        true,
	"application/x-ole-storage": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/zip": true,
	// Video
	"video/mp4":       true,
	"video/quicktime": true,
	// Text
	"text/plain": true,
}

// ValidateUpload performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist, sniffed from content
func ValidateUpload(filename string, data []byte) FileValidationResult {
	return ValidateFile(filename, data, mimetype.Detect(data).String())
}

// ValidateFile is ValidateUpload with an externally detected MIME type.
func ValidateFile(filename string, data []byte, detectedMIME string) FileValidationResult {
	// mimetype appends parameters such as "; charset=utf-8"
	base := strings.TrimSpace(strings.SplitN(detectedMIME, ";", 2)[0])
	result := FileValidationResult{
		DetectedMIME: base,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if _, ok := magicBytes[ext]; !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	// Layer 2: Magic byte validation (skip for text files)
	if ext != ".txt" && !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	// Layer 3: MIME type whitelist
	if base == "application/octet-stream" {
		// Office documents are sometimes sniffed as octet-stream; magic bytes already matched
		if ext != ".docx" && ext != ".doc" {
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !strictMIMETypes[base] {
		result.Error = "MIME type not allowed: " + base
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content carries an expected signature
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}

	signatures := magicBytes[ext]
	if len(signatures) == 0 {
		return true
	}

	for _, sig := range signatures {
		end := sig.offset + len(sig.magic)
		if len(data) >= end && bytes.Equal(data[sig.offset:end], sig.magic) {
			return true
		}
	}

	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if _, ok := magicBytes[ext]; !ok {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}

// GetAllowedExtensions returns the sorted extension whitelist for error messages
func GetAllowedExtensions() []string {
	extensions := make([]string, 0, len(magicBytes))
	for ext := range magicBytes {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// IsImageExtension checks if the extension is an image type
func IsImageExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png" || ext == ".gif" || ext == ".webp"
}
