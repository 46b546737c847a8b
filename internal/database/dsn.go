package database

import (
	"net/url"
	"strings"
)

// sourceName returns the part of the DSN before the query string. Both
// drivers split the DSN at the first '?', so a path holding '?' or '#' is
// rewritten as a file: URI with each segment escaped; SQLite decodes it back
// to the literal path.
func sourceName(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	if !strings.ContainsAny(path, "?#") {
		return path
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "file:" + strings.Join(segments, "/")
}

func withQuery(path string, q url.Values) string {
	name := sourceName(path)
	if len(q) == 0 {
		return name
	}
	return name + "?" + q.Encode()
}
