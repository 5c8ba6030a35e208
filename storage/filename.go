package storage

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces an uploaded file name to a flat ASCII name that is
// safe to join onto a storage directory. It returns "" when nothing usable
// is left.
func SecureFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != filepath.Base(name) {
		return ""
	}
	return name
}
