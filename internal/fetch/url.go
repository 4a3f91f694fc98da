package fetch

import (
	"net/url"
	"strconv"
	"strings"

	"fretcode/internal/catalog"
)

// BuildURL returns the diagram page URL for a key. version <= 0 requests the
// default page, which is also the one listing the available versions.
func BuildURL(base string, key catalog.Key, version int) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	sb.WriteString("/index.php?ch=")
	sb.WriteString(quote(key.Chord))
	if key.Variation != "" {
		sb.WriteString("&mm=")
		sb.WriteString(quote(key.Variation))
	}
	sb.WriteString("&get=Get")
	if version > 0 {
		sb.WriteString("&v=")
		sb.WriteString(strconv.Itoa(version))
	}
	return sb.String()
}

// quote percent-encodes s the way the site expects: '/' stays literal and
// spaces become %20.
func quote(s string) string {
	q := url.QueryEscape(s)
	q = strings.ReplaceAll(q, "+", "%20")
	return strings.ReplaceAll(q, "%2F", "/")
}
