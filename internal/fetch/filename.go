package fetch

import (
	"regexp"
	"time"
)

var filenameDateRe = regexp.MustCompile(`([A-Za-z]+-\d{1,2}-\d{4})`)

var filenameDateLayouts = []string{"January-2-2006", "Jan-2-2006"}

// ParseDateFromFilename extracts the publication date embedded in a bulletin
// filename like "December-10-2025-DPI-AFC.pdf". Returns false when no date
// can be read.
func ParseDateFromFilename(filename string) (time.Time, bool) {
	m := filenameDateRe.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, false
	}
	for _, layout := range filenameDateLayouts {
		if t, err := time.Parse(layout, m[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
