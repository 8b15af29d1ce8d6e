package parser

import "strings"

// Category is the closed set of section headers printed in a Daily Price
// Index bulletin. The zero value means no header has been seen yet.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryImportedRice
	CategoryLocalRice
	CategoryCorn
	CategoryFish
	CategoryBeef
	CategoryPork
	CategoryOtherLivestock
	CategoryPoultry
	CategoryLowlandVegetables
	CategoryHighlandVegetables
	CategorySpices
	CategoryFruits
	CategoryOtherBasic
)

var categoryLabels = []struct {
	cat   Category
	label string
}{
	{CategoryImportedRice, "IMPORTED COMMERCIAL RICE"},
	{CategoryLocalRice, "LOCAL COMMERCIAL RICE"},
	{CategoryCorn, "CORN PRODUCTS"},
	{CategoryFish, "FISH PRODUCTS"},
	{CategoryBeef, "BEEF MEAT PRODUCTS"},
	{CategoryPork, "PORK MEAT PRODUCTS"},
	{CategoryOtherLivestock, "OTHER LIVESTOCK MEAT PRODUCTS"},
	{CategoryPoultry, "POULTRY PRODUCTS"},
	{CategoryLowlandVegetables, "LOWLAND VEGETABLES"},
	{CategoryHighlandVegetables, "HIGHLAND VEGETABLES"},
	{CategorySpices, "SPICES"},
	{CategoryFruits, "FRUITS"},
	{CategoryOtherBasic, "OTHER BASIC COMMODITIES"},
}

// MatchCategory reports whether the line contains one of the known category
// headers. Matching is a case-insensitive substring test, so headers survive
// merged-column extraction artifacts around them.
func MatchCategory(line string) (Category, bool) {
	upper := strings.ToUpper(line)
	for _, entry := range categoryLabels {
		if strings.Contains(upper, entry.label) {
			return entry.cat, true
		}
	}
	return CategoryUnknown, false
}

// Label returns the header exactly as printed in the bulletin.
func (c Category) Label() string {
	for _, entry := range categoryLabels {
		if entry.cat == c {
			return entry.label
		}
	}
	return "UNKNOWN"
}

// Clean returns the label with the Local/Imported qualifier stripped; this is
// the category value that appears on emitted records.
func (c Category) Clean() string {
	label := c.Label()
	label = strings.ReplaceAll(label, "IMPORTED ", "")
	label = strings.ReplaceAll(label, "LOCAL ", "")
	return strings.TrimSpace(label)
}

// Imported reports whether the qualifier folded into the header marks the
// whole section as imported goods.
func (c Category) Imported() bool {
	return strings.Contains(c.Label(), "IMPORTED")
}
