// Package scraper provides HTTP fetching and HTML parsing for public Instagram posts.
//
// The scraper package fetches a single post page with a fixed browser-like header
// set and extracts the post timestamp from the first <time> element and the
// caption from the og:description meta tag. The caption is sliced after the ✨️
// marker that the description carries before the post text, and a trailing
// `.".` artifact is trimmed.
package scraper
