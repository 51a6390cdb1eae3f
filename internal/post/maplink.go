package post

import "regexp"

// mapLinkPattern matches Google Maps links, including the short goo.gl forms
var mapLinkPattern = regexp.MustCompile(`https?://(?:maps\.google\.com|maps\.app\.goo\.gl|goo\.gl/maps)/[^\s)]+`)

// ExtractMapLink returns the first map-service URL found in text, or "" if there is none.
func ExtractMapLink(text string) string {
	return mapLinkPattern.FindString(text)
}
