package parser

import (
	"regexp"

	"presyo/internal/util"
)

var (
	marketBlockRe = regexp.MustCompile(`(?is)(?:d\)|Covered markets:)\s*(1\..+?)(?:Page|\z)`)
	marketSplitRe = regexp.MustCompile(`\s*\d+\.\s*`)
)

const minMarketChars = 4

// ExtractMarkets pulls the "covered markets" footnote block out of the raw
// bulletin text: a labeled block followed by a numbered list, terminated by a
// page marker or end of text. Returns an empty list when the block is absent;
// that is a normal condition, not an error.
func ExtractMarkets(raw string) []string {
	m := marketBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return []string{}
	}

	seen := map[string]struct{}{}
	out := []string{}
	for _, fragment := range marketSplitRe.Split(m[1], -1) {
		market := util.Sanitize(fragment)
		if len(market) < minMarketChars {
			continue
		}
		if _, dup := seen[market]; dup {
			continue
		}
		seen[market] = struct{}{}
		out = append(out, market)
	}
	return out
}
