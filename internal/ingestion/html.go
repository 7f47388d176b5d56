package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// resumeContentSelectors are tried in order when extracting the main content
// region of an HTML resume or profile page.
var resumeContentSelectors = []string{
	"main",
	"article",
	".resume",
	"#resume",
	".content",
	"#content",
}

// ExtractHTMLText extracts readable text from an HTML document, removing
// navigation, scripts, and other chrome.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup").Remove()

	var mainContent *goquery.Selection
	for _, selector := range resumeContentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	return cleanWhitespace(mainContent.Text()), nil
}

// cleanWhitespace trims each line and collapses internal whitespace runs.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
		cleaned = append(cleaned, line)
	}
	result := strings.Join(cleaned, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}
