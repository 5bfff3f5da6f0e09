package snippet

import (
	"os"
	"strings"
)

// Logger receives extraction diagnostics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Document is the result of parsing one documentation text.
type Document struct {
	// Snippets holds the completed block bodies in order of appearance.
	Snippets []string

	// Unclosed is true when the text ended inside an open block. The
	// partial block is not part of Snippets.
	Unclosed bool
}

// Parse collects the bodies of all blocks fenced for lang.
//
// An opening marker seen while a block is already open does not start a new
// block and is not added to the open one.
func Parse(content string, lang Language) Document {
	if !lang.IsValid() {
		return Document{Snippets: []string{}}
	}
	open := lang.Fence()
	lines := strings.Split(content, "\n")

	var (
		doc     Document
		inBlock bool
		current []string
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == open {
			inBlock = true
			continue
		}
		if trimmed == fence && inBlock {
			inBlock = false
			doc.Snippets = append(doc.Snippets, strings.Join(current, "\n"))
			current = nil
			continue
		}
		if inBlock {
			current = append(current, line)
		}
	}

	doc.Unclosed = inBlock
	if doc.Snippets == nil {
		doc.Snippets = []string{}
	}
	return doc
}

// Extract parses content and warns through logger when a block is left open.
// A nil logger discards the warning.
func Extract(content string, lang Language, logger Logger) []string {
	doc := Parse(content, lang)
	if doc.Unclosed && logger != nil {
		logger.Warn("found unclosed code block", "language", lang.String())
	}
	return doc.Snippets
}

// ExtractFile reads path and extracts its snippets. A read failure is
// reported through logger and yields an empty slice.
func ExtractFile(path string, lang Language, logger Logger) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.Error("reading documentation file", "path", path, "error", err)
		}
		return []string{}
	}
	return Extract(string(data), lang, logger)
}
