package parser

import (
	"strings"

	"presyo/internal/util"
)

// Normalize maps the raw buffered commodity and specification text onto a
// canonical (name, specification) pair. Dispatch is category-scoped: the
// category picks the ordered rule list, the first satisfied rule wins, and
// anything unmatched falls through to a generic cleanup. Total for any
// input; the worst case is the cleaned raw text with no specification.
func Normalize(rawCommodity, rawSpec string, cat Category) (string, *string) {
	text := util.Sanitize(strings.TrimSpace(rawCommodity + " " + rawSpec))
	in := ruleInput{Text: text, Upper: strings.ToUpper(text)}

	for _, r := range rulesFor(cat) {
		if r.when(in.Upper) {
			return r.produce(in)
		}
	}
	return fallbackClean(text), nil
}

// fallbackClean strips origin, freshness and packaging adjectives plus
// embedded quantity/unit tokens from text no rule recognized.
func fallbackClean(text string) string {
	name := fallbackNoiseRe.ReplaceAllString(text, "")
	name = fallbackQtyRe.ReplaceAllString(name, "")
	return strings.Trim(collapseSpaces(name), ", ()")
}
