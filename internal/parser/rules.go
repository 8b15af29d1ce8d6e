package parser

import (
	"regexp"
	"strings"

	"presyo/internal/util"
)

// ruleInput is the sanitized concatenation of the buffered commodity text and
// specification text for one record, plus its uppercased form that the
// predicates test against.
type ruleInput struct {
	Text  string
	Upper string
}

// rule is one entry of a category's ordered rule list: a keyword predicate
// over the uppercased text and a producer for the canonical (name,
// specification) pair. Lists are evaluated top to bottom and the first match
// wins, so the order below encodes precedence ("RIB EYE" before "RIB",
// "STRIP LOIN" before "LOIN") and must be preserved when editing.
type rule struct {
	when    func(upper string) bool
	produce func(in ruleInput) (string, *string)
}

func has(words ...string) func(string) bool {
	return func(upper string) bool {
		for _, w := range words {
			if !strings.Contains(upper, w) {
				return false
			}
		}
		return true
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(upper string) bool {
		for _, p := range preds {
			if p(upper) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(string) bool) func(string) bool {
	return func(upper string) bool {
		for _, p := range preds {
			if !p(upper) {
				return false
			}
		}
		return true
	}
}

func without(word string) func(string) bool {
	return func(upper string) bool { return !strings.Contains(upper, word) }
}

func always(string) bool { return true }

// fixed returns a producer for rules whose canonical pair does not depend on
// the input text.
func fixed(name string, spec ...string) func(ruleInput) (string, *string) {
	var sp *string
	if len(spec) > 0 {
		sp = util.StringPtr(spec[0])
	}
	return func(ruleInput) (string, *string) { return name, sp }
}

// Size/specification capture patterns. Each category keeps its own pattern;
// the scopes differ (fish counts pieces per kilogram, vegetables carry
// diameter and bunch-head suffixes, fruits only ripeness and piece counts).
var (
	fishSizeRe = regexp.MustCompile(`(?i)(Large|Medium|Small).*?(\d+-?\d*\s*pcs?/?kg)?`)
	beefSizeRe = regexp.MustCompile(`(?i)\b(Large|Medium|Small|Lean|Boneless|with Bones)\b`)
	vegSpecRe  = regexp.MustCompile(`(?i)((?:Medium|Large|Small)?\s*\(?\d+-?\d*\s*(?:cm|gm?|g|pcs)(?:\s*[-/]\s*\d+\s*(?:kg|cm|g|gm))?\s*(?:diameter|bunch hd|head|pcs/kg)?\)?)`)
	fruitSpecRe = regexp.MustCompile(`(?i)(Ripe|Green|Solo|\d+-\d+\s*pcs/kg)`)

	vegNoiseRe   = regexp.MustCompile(`(?i)\b(Local|Imported|Native|Suprema Variety|Medium|Large|Small)\b`)
	beefNoiseRe  = beefSizeRe
	porkNoiseRe  = regexp.MustCompile(`(?i)\b(Local|Imported|Liempo|Kasim)\b`)
	brandNoiseRe = regexp.MustCompile(`(?i)\b(Magnolia|Bounty Fresh|Unbranded|Fresh|Fully Dressed)\b`)
	fruitNoiseRe = regexp.MustCompile(`(?i)\b(Ripe|Green|Solo|\d+-\d+\s*pcs/kg)\b`)

	emptyParensRe = regexp.MustCompile(`\(\s*\)`)

	fallbackNoiseRe = regexp.MustCompile(`(?i)\b(Local|Imported|Fresh|Frozen|Chilled|Whole Round|Native)\b`)
	fallbackQtyRe   = regexp.MustCompile(`(?i)\d+-?\d*\s*(?:pcs?/?kg|grams?|cm|ml|L)`)
)

func fishSize(in ruleInput) *string {
	if m := fishSizeRe.FindString(in.Text); m != "" {
		return util.StringPtr(m)
	}
	return nil
}

func beefSize(in ruleInput) *string {
	if m := beefSizeRe.FindString(in.Text); m != "" {
		return util.StringPtr(m)
	}
	return nil
}

func vegSpec(in ruleInput) *string {
	if m := vegSpecRe.FindStringSubmatch(in.Text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return util.StringPtr(s)
		}
	}
	return nil
}

func fruitSpec(in ruleInput) *string {
	if m := fruitSpecRe.FindStringSubmatch(in.Text); m != nil {
		return util.StringPtr(m[1])
	}
	return nil
}

// sized wraps a fixed canonical name with a per-category size capture.
func sized(name string, capture func(ruleInput) *string) func(ruleInput) (string, *string) {
	return func(in ruleInput) (string, *string) { return name, capture(in) }
}

var riceRules = []rule{
	{has("BASMATI"), fixed("Basmati Rice")},
	{has("GLUTINOUS"), fixed("Glutinous Rice")},
	{anyOf(has("JASPONICA"), has("JAPONICA")), fixed("Jasponica Rice")},
	{has("SPECIAL", "WHITE"), fixed("Special White Rice")},
	{has("PREMIUM"), fixed("Premium Rice", "5% broken")},
	{has("WELL MILLED"), fixed("Well Milled Rice", "1-19% bran streak")},
	{has("REGULAR MILLED"), fixed("Regular Milled Rice", "20-40% bran streak")},
}

var cornRules = []rule{
	{has("WHITE", "COB"), fixed("Corn White", "Cob, Glutinous")},
	{has("YELLOW", "COB"), fixed("Corn Yellow", "Cob, Sweet")},
	{has("GRITS", "WHITE", "FOOD"), fixed("Corn Grits White", "Food Grade")},
	{has("GRITS", "YELLOW", "FOOD"), fixed("Corn Grits Yellow", "Food Grade")},
	{has("CRACKED"), fixed("Corn Cracked", "Feed Grade")},
	{has("GRITS", "FEED"), fixed("Corn Grits", "Feed Grade")},
}

var fishRules = []rule{
	{anyOf(has("ALUMAHAN"), has("MACKEREL", "INDIAN")), sized("Alumahan (Indian Mackerel)", fishSize)},
	{has("BANGUS", "LARGE"), sized("Bangus Large", fishSize)},
	{has("BANGUS", "MEDIUM"), sized("Bangus Medium", fishSize)},
	{has("BONITO"), sized("Bonito (Frigate Tuna)", fishSize)},
	{has("GALUNGGONG"), fixed("Galunggong", "Medium (12-14 pcs/kg)")},
	{allOf(has("MACKEREL"), without("INDIAN")), fixed("Mackerel")},
	{has("PAMPANO"), fixed("Pampano")},
	{has("SALMON BELLY"), fixed("Salmon Belly")},
	{has("SALMON HEAD"), fixed("Salmon Head")},
	{anyOf(has("SARDINES"), has("TAMBAN")), fixed("Sardines (Tamban)")},
	{anyOf(has("SQUID"), has("PUSIT")), sized("Squid", fishSize)},
	{anyOf(has("TAMBAKOL"), has("YELLOW-FIN")), fixed("Tambakol (Yellow-Fin Tuna)", "Medium")},
	{has("TILAPIA"), fixed("Tilapia", "Medium (5-6 pcs/kg)")},
}

// Beef cuts are ordered most-specific first: "RIB EYE" and "RIB SET" before
// the bare "RIB" rule, "STRIP LOIN"/"SIRLOIN" before "LOIN".
var beefRules = []rule{
	{has("TENDERLOIN"), sized("Beef Tenderloin", beefSize)},
	{has("STRIP", "LOIN"), sized("Beef Striploin", beefSize)},
	{has("SIRLOIN"), sized("Beef Sirloin", beefSize)},
	{has("SHORT RIB"), sized("Beef Short Ribs", beefSize)},
	{has("RIB EYE"), sized("Beef Rib Eye", beefSize)},
	{has("RIB SET"), sized("Beef Rib Set", beefSize)},
	{has("RIB"), sized("Beef Ribs", beefSize)},
	{has("RUMP"), sized("Beef Rump", beefSize)},
	{has("ROUND"), sized("Beef Round", beefSize)},
	{has("LOIN"), sized("Beef Loin", beefSize)},
	{has("PLATE"), sized("Beef Plate", beefSize)},
	{has("CHUCK"), sized("Beef Chuck", beefSize)},
	{has("BRISKET"), sized("Beef Brisket", beefSize)},
	{has("SHANK"), sized("Beef Shank", beefSize)},
	{always, func(in ruleInput) (string, *string) {
		name := strings.Trim(strings.TrimSpace(beefNoiseRe.ReplaceAllString(in.Text, "")), ", ")
		if len(name) <= 2 {
			name = "Beef"
		}
		return name, beefSize(in)
	}},
}

var porkRules = []rule{
	{has("BELLY"), fixed("Pork Belly (Liempo)")},
	{has("PICNIC SHOULDER"), fixed("Pork Picnic Shoulder (Kasim)")},
	{always, func(in ruleInput) (string, *string) {
		name := strings.Trim(strings.TrimSpace(porkNoiseRe.ReplaceAllString(in.Text, "")), ", ")
		return collapseSpaces(name), nil
	}},
}

// Poultry brands resolve in a fixed priority order so a line mentioning two
// brands lands under the stronger one.
var poultryBrands = []struct {
	keyword string
	brand   string
}{
	{"MAGNOLIA", "Magnolia"},
	{"BOUNTY FRESH", "Bounty Fresh"},
	{"UNBRANDED", "Unbranded"},
}

var poultryRules = []rule{
	{has("EGG"), fixed("Chicken Egg", "Medium (56-60 grams/pc)")},
	{always, func(in ruleInput) (string, *string) {
		var brand *string
		for _, b := range poultryBrands {
			if strings.Contains(in.Upper, b.keyword) {
				brand = util.StringPtr(b.brand)
				break
			}
		}
		name := strings.Trim(strings.TrimSpace(brandNoiseRe.ReplaceAllString(in.Text, "")), ", ")
		return collapseSpaces(name), brand
	}},
}

var vegetableRules = []rule{
	{has("BELL PEPPER", "GREEN"), sized("Bell Pepper (Green)", vegSpec)},
	{has("BELL PEPPER", "RED"), sized("Bell Pepper (Red)", vegSpec)},
	{has("BELL PEPPER"), sized("Bell Pepper", vegSpec)},
	{has("CABBAGE", "RARE BALL"), sized("Cabbage (Rare Ball)", vegSpec)},
	{has("CABBAGE", "SCORPIO"), sized("Cabbage (Scorpio)", vegSpec)},
	{has("CABBAGE", "WONDER BALL"), sized("Cabbage (Wonder Ball)", vegSpec)},
	{has("CABBAGE"), sized("Cabbage", vegSpec)},
	{has("LETTUCE", "GREEN ICE"), sized("Lettuce (Green Ice)", vegSpec)},
	{has("LETTUCE", "ICEBERG"), sized("Lettuce (Iceberg)", vegSpec)},
	{has("LETTUCE", "ROMAINE"), sized("Lettuce (Romaine)", vegSpec)},
	{has("LETTUCE"), sized("Lettuce", vegSpec)},
	{has("BROCCOLI"), sized("Broccoli", vegSpec)},
	{has("POTATO"), sized("White Potato", vegSpec)},
	{has("CAULIFLOWER"), sized("Cauliflower", vegSpec)},
	{has("CARROT"), sized("Carrots", vegSpec)},
	{has("CELERY"), sized("Celery", vegSpec)},
	{has("CHAYOTE"), sized("Chayote", vegSpec)},
	{anyOf(has("HABICHUELAS"), has("BAGUIO BEANS")), sized("Baguio Beans", vegSpec)},
	{has("PECHAY", "BAGUIO"), sized("Pechay Baguio", vegSpec)},
	{always, func(in ruleInput) (string, *string) {
		name := vegSpecRe.ReplaceAllString(in.Text, "")
		name = vegNoiseRe.ReplaceAllString(name, "")
		name = emptyParensRe.ReplaceAllString(name, "")
		name = strings.Trim(collapseSpaces(name), ", ()")
		return name, vegSpec(in)
	}},
}

var spiceRules = []rule{
	{allOf(anyOf(has("CHILLI"), has("CHILI")), anyOf(has("RED"), has("TINGALA"))), fixed("Chilli Red", "Tingala")},
	{allOf(anyOf(has("CHILLI"), has("CHILI")), has("GREEN")), fixed("Chilli Green", "Haba/Panigang")},
	{allOf(anyOf(has("CHILLI"), has("CHILI")), has("TIGER")), fixed("Tiger Chillies")},
	{has("GARLIC", "NATIVE"), fixed("Garlic Native")},
	{has("GARLIC"), fixed("Garlic")},
	{has("GINGER"), fixed("Ginger", "Medium (150-300 gm)")},
	{has("ONION", "RED"), sized("Red Onion", onionSize)},
	{has("ONION", "WHITE"), sized("White Onion", onionSize)},
}

func onionSize(in ruleInput) *string {
	if strings.Contains(in.Upper, "LARGE") {
		return util.StringPtr("Large")
	}
	if strings.Contains(in.Upper, "MEDIUM") {
		return util.StringPtr("Medium")
	}
	return nil
}

var fruitRules = []rule{
	{has("BANANA", "LAKATAN"), fixed("Banana (Lakatan)", "8-10 pcs/kg")},
	{has("BANANA", "LATUNDAN"), fixed("Banana (Latundan)", "10-12 pcs/kg")},
	{has("BANANA", "SABA"), fixed("Banana (Saba)")},
	{has("MANGO", "CARABAO"), fixed("Mango (Carabao)", "Ripe, 3-4 pcs/kg")},
	{has("PAPAYA"), fixed("Papaya", "Solo, Ripe, 2-3 pcs/kg")},
	{always, func(in ruleInput) (string, *string) {
		name := strings.Trim(collapseSpaces(fruitNoiseRe.ReplaceAllString(in.Text, "")), ", ()")
		return name, fruitSpec(in)
	}},
}

// Cooking oil brands: named brands take precedence over the generic coconut
// oil type, so "Coconut Oil (Minola)" classifies under Minola.
var oilBrands = []struct {
	keyword string
	brand   string
}{
	{"MINOLA", "Minola"},
	{"SPRING", "Spring"},
	{"JOLLY", "Palm Olein (Jolly)"},
	{"PALM OLEIN", "Palm Olein (Jolly)"},
	{"COCONUT", "Coconut"},
}

var basicRules = []rule{
	{has("COOKING OIL"), func(in ruleInput) (string, *string) {
		brand := "Palm"
		for _, b := range oilBrands {
			if strings.Contains(in.Upper, b.keyword) {
				brand = b.brand
				break
			}
		}
		return "Cooking Oil (" + brand + ")", nil
	}},
	{has("SUGAR", "REFINED"), fixed("Sugar (Refined)")},
	{has("SUGAR", "WASHED"), fixed("Sugar (Washed)")},
	{has("SUGAR", "BROWN"), fixed("Sugar (Brown)")},
	{has("SALT", "IODIZED"), fixed("Salt (Iodized)")},
	{has("SALT", "ROCK"), fixed("Salt (Rock)")},
}

// rulesFor maps a category tag to its rule list. Categories without a list
// (other livestock, unknown) go straight to the generic fallback cleanup.
func rulesFor(cat Category) []rule {
	switch cat {
	case CategoryImportedRice, CategoryLocalRice:
		return riceRules
	case CategoryCorn:
		return cornRules
	case CategoryFish:
		return fishRules
	case CategoryBeef:
		return beefRules
	case CategoryPork:
		return porkRules
	case CategoryPoultry:
		return poultryRules
	case CategoryLowlandVegetables, CategoryHighlandVegetables:
		return vegetableRules
	case CategorySpices:
		return spiceRules
	case CategoryFruits:
		return fruitRules
	case CategoryOtherBasic:
		return basicRules
	default:
		return nil
	}
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
