// Package parser turns the noisy line-oriented text extracted from a Daily
// Price Index bulletin into structured commodity price records. It is a pure
// transformation: one text blob in, one ParseResult out, no I/O and no state
// shared between calls.
package parser

import (
	"strconv"
	"strings"

	"presyo/internal"
	"presyo/internal/util"
)

// Parser holds the transient state of one parse pass: the current category
// and the two continuation buffers. Each call must own its own Parser; a
// single instance is not safe for concurrent Parse calls.
type Parser struct {
	category     Category
	commodityBuf []string
	specBuf      []string
}

func New() *Parser {
	return &Parser{}
}

// Parse runs a single forward pass over the bulletin text. Malformed lines
// never produce errors; they degrade by omission.
func Parse(raw string) internal.ParseResult {
	return New().Parse(raw)
}

func (p *Parser) Parse(raw string) internal.ParseResult {
	p.category = CategoryUnknown
	p.resetBuffers()

	result := internal.ParseResult{
		CoveredMarkets: ExtractMarkets(raw),
		Records:        []internal.PriceRecord{},
	}

	for _, rawLine := range strings.Split(raw, "\n") {
		line := util.Sanitize(rawLine)
		if line == "" {
			continue
		}
		p.processLine(line, &result)
	}
	return result
}

func (p *Parser) processLine(line string, result *internal.ParseResult) {
	// A reflowed page boundary may have corrupted whatever is in flight;
	// recovery discards rather than guesses.
	if isPageMarker(line) {
		p.resetBuffers()
		return
	}

	if cat, ok := MatchCategory(line); ok {
		p.category = cat
		p.resetBuffers()
		return
	}

	if isBoilerplate(line) {
		return
	}

	// Nothing upstream of the first category header is trustworthy.
	if p.category == CategoryUnknown {
		return
	}

	content, token, priced := splitPrice(line)
	if !priced {
		// Continuation fragment: the first price-less line after a record
		// closes is taken as a commodity name, anything after that as
		// specification overflow.
		if len(p.commodityBuf) == 0 {
			p.commodityBuf = append(p.commodityBuf, line)
		} else {
			p.specBuf = append(p.specBuf, line)
		}
		return
	}

	p.closeRecord(content, token, result)
}

// closeRecord assembles and emits one PriceRecord from the buffered
// fragments and the price-terminated line. Buffers are cleared whether or
// not a record comes out.
func (p *Parser) closeRecord(content, token string, result *internal.ParseResult) {
	defer p.resetBuffers()

	// A price can land on a column-header echo in reflowed text.
	if isHeaderEcho(content) {
		return
	}
	content, ok := stripHeaderResidue(content)
	if !ok {
		return
	}

	rawText := strings.TrimSpace(strings.Join(p.commodityBuf, " ") + " " + strings.Join(p.specBuf, " ") + " " + content)
	origin := internal.OriginLocal
	if strings.Contains(strings.ToUpper(rawText), "IMPORTED") || p.category.Imported() {
		origin = internal.OriginImported
	}
	content = strings.TrimSpace(originRe.ReplaceAllString(content, ""))

	fullCommodity := strings.Join(p.commodityBuf, " ")
	fullSpec := strings.TrimSpace(strings.Join(append(append([]string{}, p.specBuf...), content), " "))
	if fullCommodity == "" {
		fullCommodity = content
		fullSpec = ""
	}

	name, spec := Normalize(fullCommodity, fullSpec, p.category)

	unitSource := fullSpec
	if unitSource == "" {
		unitSource = fullCommodity
	}
	unit := ResolveUnit(unitSource, name)

	price := parsePrice(token)
	if price == nil {
		return
	}
	if len(name) <= 2 || isHeaderArtifact(name) {
		return
	}

	result.Records = append(result.Records, internal.PriceRecord{
		Category:      p.category.Clean(),
		Commodity:     name,
		Specification: spec,
		Origin:        origin,
		Unit:          unit,
		Price:         price,
	})
}

func (p *Parser) resetBuffers() {
	p.commodityBuf = p.commodityBuf[:0]
	p.specBuf = p.specBuf[:0]
}

// parsePrice turns the trailing token into a value. The not-applicable
// placeholder and anything unparseable yield nil, which drops the record.
func parsePrice(token string) *float64 {
	if token == "n/a" || token == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	if err != nil || v < 0 {
		return nil
	}
	return util.FloatPtr(v)
}

// isHeaderArtifact guards against the normalizer passing an unrecognized
// header fragment through verbatim.
func isHeaderArtifact(name string) bool {
	upper := strings.ToUpper(name)
	for _, w := range headerWords {
		if upper == w {
			return true
		}
	}
	return headerWordCount(upper) >= 2
}
