package upload_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifaleee/MetroArt/internal/upload"
)

func TestBuildKeySanitization(t *testing.T) {
	tests := []struct {
		name         string
		originalName string
		wantSuffix   string
	}{
		{"plain filename", "sunset.png", "-sunset.png"},
		{"spaces and unicode", "my great piece (final).jpg", "-my-great-piece--final-.jpg"},
		{"path traversal", "../../etc/passwd", "-..-..-etc-passwd"},
		{"key delimiter injection", "a/b/c.gif", "-a-b-c.gif"},
		{"empty name", "", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := upload.BuildKey(upload.Namespace, "owner-1", tt.originalName)

			require.True(t, strings.HasPrefix(key, upload.Namespace+"/owner-1-"),
				"key %q must be namespaced under the owner", key)
			assert.True(t, strings.HasSuffix(key, tt.wantSuffix), "key %q", key)

			// Nothing outside [A-Za-z0-9.] survives from the filename, so the
			// only slash is the namespace separator.
			rest := strings.TrimPrefix(key, upload.Namespace+"/")
			assert.NotContains(t, rest, "/")
			assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9.-]+$`), rest)
		})
	}
}

func TestBuildKeyDistinctPerCall(t *testing.T) {
	// Retried stores of the same logical upload must land on distinct keys.
	k1 := upload.BuildKey(upload.Namespace, "owner-1", "sunset.png")
	k2 := upload.BuildKey(upload.Namespace, "owner-1", "sunset.png")
	assert.NotEqual(t, k1, k2)
}
