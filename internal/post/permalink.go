package post

import "strings"

// InstagramHost is the substring a URL must contain to be accepted as a post link.
const InstagramHost = "instagram.com"

// NormalizeURL strips the query string and fragment from a URL and makes sure
// it ends with a single trailing slash. Strings that are not URLs only get the
// slash treatment.
func NormalizeURL(url string) string {
	url, _, _ = strings.Cut(url, "?")
	url, _, _ = strings.Cut(url, "#")
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url
}

// IsInstagramURL reports whether url looks like an Instagram link
func IsInstagramURL(url string) bool {
	return strings.Contains(url, InstagramHost)
}
