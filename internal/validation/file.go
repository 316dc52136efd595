package validation

import (
	"fmt"
	"strings"
)

const (
	MaxFileNameLength = 255
)

// ValidateFileName rejects names that are empty, oversized, or that could
// escape the intended storage prefix.
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name is required")
	}
	if len(name) > MaxFileNameLength {
		return fmt.Errorf("file name too long: maximum is %d characters", MaxFileNameLength)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("file name contains invalid characters")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("file name contains invalid characters")
	}
	return nil
}

// ValidateFileSize rejects empty and oversized uploads. maxBytes <= 0 means
// no cap.
func ValidateFileSize(sizeBytes, maxBytes int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("file size must be greater than zero")
	}
	if maxBytes > 0 && sizeBytes > maxBytes {
		return fmt.Errorf("file too large: maximum size is %d MB", maxBytes/(1<<20))
	}
	return nil
}

// SanitizeText strips control characters and truncates to max runes. Used
// for free-form fields like the upload purpose before they reach folder
// routing.
func SanitizeText(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())
	runes := []rune(out)
	if len(runes) > max {
		out = string(runes[:max])
	}
	return out
}
