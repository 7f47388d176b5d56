// Package ingestion loads resume documents from files and URLs and
// normalizes them into clean plain text for scoring and extraction.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// CleanText cleans and normalizes text content while preserving structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	// Trim only blank edges; a leading indent on the first line may be
	// bullet structure worth keeping.
	return strings.Trim(result, "\n")
}

// cleanLine cleans a single line while preserving structure.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")

	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Keep markdown headings as-is, normalize leading spaces to 0.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Preserve bullet lists with their indentation.
	if isBulletLine(line) {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	// Regular lines: collapse internal runs of whitespace, keep indentation.
	leadingSpace := len(line) - len(trimmed)
	content := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	if leadingSpace > 0 {
		return strings.Repeat(" ", leadingSpace) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item.
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2.
func removeExcessiveBlankLines(content string) string {
	re := regexp.MustCompile(`\n\n\n+`)
	return re.ReplaceAllString(content, "\n\n")
}

// IngestFromFile reads a resume document, cleans it, and returns the cleaned
// text with metadata. HTML files are converted to text first; everything
// else is treated as plain text.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		text, err = ExtractHTMLText(text)
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract text from HTML: %w", err)
		}
	}

	cleanedText := CleanText(text)
	metadata := NewMetadata(cleanedText, "")
	metadata.SourceType = sourceTypeForExt(ext)

	return cleanedText, metadata, nil
}

func sourceTypeForExt(ext string) string {
	switch ext {
	case ".html", ".htm":
		return "html"
	case ".md", ".markdown":
		return "markdown"
	default:
		return "text"
	}
}
