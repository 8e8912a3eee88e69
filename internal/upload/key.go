package upload

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Namespace is the key prefix under which all artwork images are stored.
const Namespace = "art-uploads"

// unsafeKeyChars matches every character stripped from an original filename
// before it is embedded in an object key. Only [A-Za-z0-9.] survive, which
// rules out path traversal and delimiter injection.
var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9.]`)

// BuildKey constructs a collision-resistant object key of the form
// {namespace}/{ownerID}-{discriminator}-{sanitizedName}. The random
// discriminator means retried uploads of the same file get distinct keys.
func BuildKey(namespace, ownerID, originalName string) string {
	sanitized := unsafeKeyChars.ReplaceAllString(originalName, "-")
	return fmt.Sprintf("%s/%s-%s-%s", namespace, ownerID, uuid.NewString(), sanitized)
}
