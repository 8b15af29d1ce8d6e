package parser

import (
	"regexp"
	"strings"
)

var (
	pageMarkerRe = regexp.MustCompile(`(?i)Page\s+\d+\s+of\s+\d+`)

	// A data line ends in a thousands-grouped amount with exactly two
	// fraction digits, or the bulletin's not-applicable placeholder.
	priceTailRe = regexp.MustCompile(`\s+(\d{1,3}(?:,\d{3})*\.\d{2}|n/a)\s*$`)

	headerPhraseRe = regexp.MustCompile(`(?i)(?:PREVAILING\s+)?(?:RETAIL\s+)?PRICE\s+PER(?:\s+UNIT)?`)
	headerWordRe   = regexp.MustCompile(`(?i)\b(PREVAILING|RETAIL|PRICE|PER|UNIT|COMMODITY|SPECIFICATION|PAGE|DEPARTMENT|COVERED|MARKETS|OF|P/UNIT)\b\s*`)
	originRe       = regexp.MustCompile(`(?i),?\s*\b(Local|Imported)\b`)
	spacesRe       = regexp.MustCompile(`\s+`)
)

// Footnote and title markers; a line carrying any of these is never data.
var noiseMarkers = []string{"Source:", "Note:", "Department", "DAILY PRICE INDEX"}

// Column-header vocabulary shared by the pre-price noise check, the
// header-echo re-check after the price is split off, and the final guard on
// normalized names.
var headerWords = []string{"COMMODITY", "SPECIFICATION", "PREVAILING", "RETAIL", "PRICE", "UNIT"}

func headerWordCount(upper string) int {
	count := 0
	for _, w := range headerWords {
		if strings.Contains(upper, w) {
			count++
		}
	}
	return count
}

func isPageMarker(line string) bool {
	return pageMarkerRe.MatchString(line)
}

// isBoilerplate flags header/footer noise before any price splitting: source
// and footnote markers, the document title, or a line carrying two or more
// column-header words.
func isBoilerplate(line string) bool {
	for _, marker := range noiseMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return headerWordCount(strings.ToUpper(line)) >= 2
}

// splitPrice cuts a trailing price token off the line. The second return is
// the token itself ("n/a" or a grouped decimal), the first is what remains.
func splitPrice(line string) (content, token string, ok bool) {
	loc := priceTailRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", "", false
	}
	return strings.TrimSpace(line[:loc[0]]), line[loc[2]:loc[3]], true
}

// isHeaderEcho re-checks the content left of a price token. Reflowed pages
// sometimes glue a stray number onto the column-header row, which must not
// become a record.
func isHeaderEcho(content string) bool {
	if isPageMarker(content) {
		return true
	}
	upper := strings.ToUpper(content)
	if strings.Contains(upper, "RETAIL PRICE PER") || strings.Contains(upper, "PREVAILING RETAIL") {
		return true
	}
	return headerWordCount(upper) >= 2
}

// stripHeaderResidue removes column-header phrases and words that page
// reflow merged into a data line. Returns the cleaned content and false when
// the line turned out to be pure header residue.
func stripHeaderResidue(content string) (string, bool) {
	cleaned := strings.TrimSpace(headerPhraseRe.ReplaceAllString(content, ""))
	if cleaned == content && headerWordCount(strings.ToUpper(content)) >= 1 {
		return "", false
	}
	cleaned = headerWordRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(spacesRe.ReplaceAllString(cleaned, " "))
	if len(cleaned) < 3 {
		return "", false
	}
	return cleaned, true
}
