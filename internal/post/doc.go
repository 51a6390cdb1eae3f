// Package post provides the record extracted from a single Instagram post and
// the text heuristics that fill it in.
//
// The post package normalizes permalinks, resolves loosely formatted
// timestamps into calendar dates, classifies captions into a fixed set of
// regions by keyword, and pulls map-service links out of caption text. Every
// function here is pure and falls back to a fixed default instead of failing.
package post
