// Package extractor converts PDF statement bytes into plain text. Several
// extraction methods are tried in order of layout fidelity; output that does
// not read like a bank statement is rejected rather than passed downstream.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrNoText indicates that no readable text could be recovered from the PDF.
// Image-only scans and exotic font encodings end up here.
var ErrNoText = errors.New("no readable text could be extracted from PDF")

// Text extracts the full text of a PDF document. Pages are joined with blank
// lines. Returns a wrapped error when the document cannot be opened and
// ErrNoText when every method yields garbage.
func Text(data []byte) (string, error) {
	pages, err := extract(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	if !readable(pages) {
		return "", ErrNoText
	}
	return strings.Join(pages, "\n\n"), nil
}

// extract opens the document and tries the extraction methods from best to
// worst layout preservation. The pdf library panics on some malformed
// documents; that is converted into an error.
func extract(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	numPages := r.NumPage()
	if numPages == 0 {
		return nil, errors.New("pdf has no pages")
	}

	if pages = extractByRow(r, numPages); readable(pages) {
		return pages, nil
	}
	if pages = extractByContent(r, numPages); readable(pages) {
		return pages, nil
	}
	if text := extractPlainText(r); readable([]string{text}) {
		return []string{text}, nil
	}
	return pages, nil
}

// extractByRow uses the library's row grouping, which preserves tabular
// layout best.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reconstructs rows from raw text objects by Y coordinate,
// inserting a column gap where text items are far apart horizontally.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type item struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rows := make(map[int][]item)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rows[y] = append(rows[y], item{x: t.X, s: t.S})
		}

		ys := make([]int, 0, len(rows))
		for y := range rows {
			ys = append(ys, y)
		}
		// PDF Y runs bottom-to-top.
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			items := rows[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var parts []string
			var prevX float64
			for j, it := range items {
				if j > 0 && it.x-prevX > 15 {
					parts = append(parts, "  ")
				}
				parts = append(parts, it.s)
				prevX = it.x
			}
			if line := strings.TrimSpace(strings.Join(parts, "")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// statementWords appear in virtually every bank statement; extracted text
// containing none of them is almost certainly garbage from a broken font map.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "transfer",
	"opening", "closing", "period", "page",
}

// readable reports whether the pages contain enough text, a high enough
// ratio of plain characters, and at least one recognizable statement word.
func readable(pages []string) bool {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	if total <= 50 {
		return false
	}
	if quality(pages) <= 0.6 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// quality returns the ratio of plain readable characters to total characters.
// The check is deliberately strict ASCII: identity-encoded fonts produce
// accented garbage that unicode.IsLetter would happily accept.
func quality(pages []string) float64 {
	total, ok := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				ok++
			case unicode.IsSpace(r):
				ok++
			case strings.ContainsRune(`.,-/:;()'"£$€%&@#!?+=*`, r):
				ok++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total)
}
