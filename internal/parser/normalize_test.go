package parser

import "testing"

func TestNormalizeRice(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantName string
		wantSpec string
	}{
		{name: "basmati", raw: "Basmati Rice", wantName: "Basmati Rice"},
		{name: "premium", raw: "Premium Rice (5% broken)", wantName: "Premium Rice", wantSpec: "5% broken"},
		{name: "well milled", raw: "Rice Well Milled", wantName: "Well Milled Rice", wantSpec: "1-19% bran streak"},
		{name: "regular milled", raw: "Regular Milled Rice", wantName: "Regular Milled Rice", wantSpec: "20-40% bran streak"},
		{name: "jasponica spelling", raw: "Japonica Rice", wantName: "Jasponica Rice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, spec := Normalize(tc.raw, "", CategoryLocalRice)
			if name != tc.wantName {
				t.Fatalf("name=%q want %q", name, tc.wantName)
			}
			if tc.wantSpec != "" && (spec == nil || *spec != tc.wantSpec) {
				t.Fatalf("spec=%v want %q", spec, tc.wantSpec)
			}
		})
	}
}

func TestNormalizeBeefRuleOrder(t *testing.T) {
	// "rib eye" must win over the bare "rib" rule even though both match.
	name, _ := Normalize("Beef Rib Eye", "", CategoryBeef)
	if name != "Beef Rib Eye" {
		t.Fatalf("name=%q", name)
	}
	name, _ = Normalize("Beef Ribs with Bones", "", CategoryBeef)
	if name != "Beef Ribs" {
		t.Fatalf("name=%q", name)
	}
	name, _ = Normalize("Beef Strip Loin", "", CategoryBeef)
	if name != "Beef Striploin" {
		t.Fatalf("name=%q", name)
	}
	name, spec := Normalize("Beef Oxtail", "Lean", CategoryBeef)
	if name != "Beef Oxtail" {
		t.Fatalf("fallback name=%q", name)
	}
	if spec == nil || *spec != "Lean" {
		t.Fatalf("fallback spec=%v", spec)
	}
}

func TestNormalizeOilBrandPriority(t *testing.T) {
	// A named brand wins over the generic oil type it is made of.
	name, _ := Normalize("Coconut Cooking Oil (Minola)", "350 ml", CategoryOtherBasic)
	if name != "Cooking Oil (Minola)" {
		t.Fatalf("name=%q", name)
	}
	name, _ = Normalize("Coconut Cooking Oil", "1 Liter", CategoryOtherBasic)
	if name != "Cooking Oil (Coconut)" {
		t.Fatalf("name=%q", name)
	}
	name, _ = Normalize("Palm Olein Cooking Oil", "", CategoryOtherBasic)
	if name != "Cooking Oil (Palm Olein (Jolly))" {
		t.Fatalf("name=%q", name)
	}
}

func TestNormalizePoultryBrandPriority(t *testing.T) {
	name, spec := Normalize("Magnolia Whole Chicken Fully Dressed", "", CategoryPoultry)
	if name != "Whole Chicken" {
		t.Fatalf("name=%q", name)
	}
	if spec == nil || *spec != "Magnolia" {
		t.Fatalf("spec=%v", spec)
	}

	name, spec = Normalize("Chicken Egg", "Medium", CategoryPoultry)
	if name != "Chicken Egg" {
		t.Fatalf("egg name=%q", name)
	}
	if spec == nil || *spec != "Medium (56-60 grams/pc)" {
		t.Fatalf("egg spec=%v", spec)
	}
}

func TestNormalizeVegetables(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		spec     string
		wantName string
	}{
		{name: "cabbage variety", raw: "Cabbage Scorpio", wantName: "Cabbage (Scorpio)"},
		{name: "bell pepper green", raw: "Bell Pepper Green", wantName: "Bell Pepper (Green)"},
		{name: "potato", raw: "Potato", wantName: "White Potato"},
		{name: "baguio beans alias", raw: "Habichuelas", wantName: "Baguio Beans"},
		{name: "pechay", raw: "Pechay Baguio", wantName: "Pechay Baguio"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, _ := Normalize(tc.raw, tc.spec, CategoryHighlandVegetables)
			if name != tc.wantName {
				t.Fatalf("name=%q want %q", name, tc.wantName)
			}
		})
	}
}

func TestNormalizeVegetableSizeCapture(t *testing.T) {
	name, spec := Normalize("Carrots", "Medium (8-10 cm diameter)", CategoryHighlandVegetables)
	if name != "Carrots" {
		t.Fatalf("name=%q", name)
	}
	if spec == nil || *spec == "" {
		t.Fatalf("no size captured")
	}
}

func TestNormalizeSpices(t *testing.T) {
	name, spec := Normalize("Chilli Tingala", "", CategorySpices)
	if name != "Chilli Red" || spec == nil || *spec != "Tingala" {
		t.Fatalf("name=%q spec=%v", name, spec)
	}
	name, spec = Normalize("Red Onion", "Large", CategorySpices)
	if name != "Red Onion" || spec == nil || *spec != "Large" {
		t.Fatalf("name=%q spec=%v", name, spec)
	}
}

func TestNormalizeFruits(t *testing.T) {
	name, spec := Normalize("Banana Lakatan", "", CategoryFruits)
	if name != "Banana (Lakatan)" || spec == nil || *spec != "8-10 pcs/kg" {
		t.Fatalf("name=%q spec=%v", name, spec)
	}
	name, _ = Normalize("Rambutan 10-12 pcs/kg", "", CategoryFruits)
	if name != "Rambutan" {
		t.Fatalf("fallback name=%q", name)
	}
}

func TestNormalizeFallbackCleanup(t *testing.T) {
	// Other-livestock has no rule list; the generic cleanup strips origin
	// and freshness adjectives plus embedded quantities.
	name, spec := Normalize("Carabeef Frozen Whole Round 250 grams", "", CategoryOtherLivestock)
	if name != "Carabeef" {
		t.Fatalf("name=%q", name)
	}
	if spec != nil {
		t.Fatalf("spec=%v", spec)
	}
}

func TestNormalizeNeverEmpty(t *testing.T) {
	inputs := []string{"", "   ", "()", "Fresh Local", "\x00\x1f"}
	for _, in := range inputs {
		for _, cat := range []Category{CategoryUnknown, CategoryFish, CategoryOtherBasic} {
			name, _ := Normalize(in, "", cat)
			_ = name // must not panic; empty names are filtered by the caller
		}
	}
}
