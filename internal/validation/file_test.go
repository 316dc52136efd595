package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "report.pdf", false},
		{"spaces", "annual report 2026.pdf", false},
		{"unicode", "facture-décembre.pdf", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 256), true},
		{"at limit", strings.Repeat("a", 255), false},
		{"path traversal", "../../etc/passwd", true},
		{"forward slash", "a/b.pdf", true},
		{"backslash", "a\\b.pdf", true},
		{"null byte", "a\x00b.pdf", true},
		{"double dot", "file..pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileSize(t *testing.T) {
	assert.NoError(t, ValidateFileSize(1, 100))
	assert.NoError(t, ValidateFileSize(100, 100))
	assert.Error(t, ValidateFileSize(101, 100))
	assert.Error(t, ValidateFileSize(0, 100))
	assert.Error(t, ValidateFileSize(-1, 100))

	// maxBytes <= 0 disables the cap
	assert.NoError(t, ValidateFileSize(1<<40, 0))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "bank statements", SanitizeText("bank\x00 statements", 100))
	assert.Equal(t, "hello", SanitizeText("  hello  ", 100))
	assert.Equal(t, "abc", SanitizeText("abcdef", 3))
	assert.Equal(t, "line\none", SanitizeText("line\none", 100))
	assert.Equal(t, "", SanitizeText("\x01\x02\x03", 100))
}
