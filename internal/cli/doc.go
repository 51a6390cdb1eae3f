// Package cli implements the command-line interface for igpost.
//
// The cli package provides the Cobra-based root command and the interactive
// session that reads post URLs one per line, validates them, fetches each post
// through the scraper and prints the resulting snippet. URLs given as arguments
// are processed the same way without prompting.
package cli
