// Package pathx provides path comparisons missing from [path/filepath].
package pathx

import (
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
)

// Descends reports whether the slash-separated path b
// is equal to, or inside a.
func Descends(a, b string) bool {
	a = strings.TrimSuffix(a, "/")
	if !strings.HasPrefix(b, a) {
		return false
	}
	b = b[len(a):]
	return b == "" || b[0] == '/'
}

// Within reports whether the file path is dir or a file inside it.
// Both are made absolute before comparison.
func Within(dir, path string) (bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	return Descends(filepath.ToSlash(dir), filepath.ToSlash(path)), nil
}
