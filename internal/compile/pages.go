package compile

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CountPDFPages counts the pages in a PDF file. It tries pdfinfo first and
// falls back to ghostscript.
func CountPDFPages(pdfPath string) (int, error) {
	if count, err := countPagesWithPdfinfo(pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesWithGhostscript(pdfPath); err == nil {
		return count, nil
	}

	return 0, &ToolError{
		Message: "failed to count PDF pages: neither pdfinfo nor ghostscript available",
	}
}

func countPagesWithPdfinfo(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}
	return parsePdfinfoPages(string(output))
}

// parsePdfinfoPages finds the "Pages: N" line in pdfinfo output.
func parsePdfinfoPages(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

func countPagesWithGhostscript(pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	cmd := exec.Command("gs", "-q", "-dNODISPLAY", "-c", script)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}

	return count, nil
}
