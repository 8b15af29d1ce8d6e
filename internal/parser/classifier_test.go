package parser

import "testing"

func TestSplitPrice(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		content string
		token   string
		ok      bool
	}{
		{name: "plain", line: "Tilapia 140.00", content: "Tilapia", token: "140.00", ok: true},
		{name: "thousands", line: "Beef Tenderloin 1,250.00", content: "Beef Tenderloin", token: "1,250.00", ok: true},
		{name: "not applicable", line: "Pampano n/a", content: "Pampano", token: "n/a", ok: true},
		{name: "no price", line: "Bangus Large", ok: false},
		{name: "one decimal digit", line: "Tilapia 140.0", ok: false},
		{name: "price mid line", line: "140.00 Tilapia", ok: false},
		{name: "bare price", line: "140.00", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content, token, ok := splitPrice(tc.line)
			if ok != tc.ok {
				t.Fatalf("ok=%v want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if content != tc.content || token != tc.token {
				t.Fatalf("content=%q token=%q", content, token)
			}
		})
	}
}

func TestIsPageMarker(t *testing.T) {
	if !isPageMarker("Page 2 of 5") {
		t.Fatal("page marker not recognized")
	}
	if isPageMarker("Pampano") {
		t.Fatal("false positive")
	}
}

func TestIsBoilerplate(t *testing.T) {
	noisy := []string{
		"Source: DA-AMAS",
		"Note: prices as monitored",
		"Department of Agriculture",
		"COMMODITY SPECIFICATION PREVAILING RETAIL",
		"DAILY PRICE INDEX",
	}
	for _, line := range noisy {
		if !isBoilerplate(line) {
			t.Fatalf("not flagged: %q", line)
		}
	}

	clean := []string{"Bangus Large", "Premium Rice", "Chicken Egg Medium"}
	for _, line := range clean {
		if isBoilerplate(line) {
			t.Fatalf("false positive: %q", line)
		}
	}
}

func TestStripHeaderResidue(t *testing.T) {
	// A header phrase glued onto a data fragment by reflow is removed.
	got, ok := stripHeaderResidue("RETAIL PRICE PER UNIT Bangus")
	if !ok || got != "Bangus" {
		t.Fatalf("got=%q ok=%v", got, ok)
	}

	// Pure residue collapses to nothing and is rejected.
	if _, ok := stripHeaderResidue("UNIT"); ok {
		t.Fatal("pure residue accepted")
	}

	got, ok = stripHeaderResidue("Bangus Large")
	if !ok || got != "Bangus Large" {
		t.Fatalf("got=%q ok=%v", got, ok)
	}
}

func TestMatchCategory(t *testing.T) {
	cases := []struct {
		line string
		want Category
	}{
		{line: "FISH PRODUCTS", want: CategoryFish},
		{line: "fish products", want: CategoryFish},
		{line: "  LOCAL COMMERCIAL RICE  ", want: CategoryLocalRice},
		{line: "IMPORTED COMMERCIAL RICE (per kg)", want: CategoryImportedRice},
		{line: "OTHER BASIC COMMODITIES", want: CategoryOtherBasic},
	}
	for _, tc := range cases {
		got, ok := MatchCategory(tc.line)
		if !ok || got != tc.want {
			t.Fatalf("line=%q got=%v ok=%v", tc.line, got, ok)
		}
	}

	if _, ok := MatchCategory("Bangus Large"); ok {
		t.Fatal("false category match")
	}
}

func TestCategoryQualifiers(t *testing.T) {
	if CategoryImportedRice.Clean() != "COMMERCIAL RICE" {
		t.Fatalf("clean=%q", CategoryImportedRice.Clean())
	}
	if CategoryLocalRice.Clean() != "COMMERCIAL RICE" {
		t.Fatalf("clean=%q", CategoryLocalRice.Clean())
	}
	if !CategoryImportedRice.Imported() || CategoryLocalRice.Imported() {
		t.Fatal("imported qualifier wrong")
	}
	if CategoryFish.Clean() != "FISH PRODUCTS" {
		t.Fatalf("clean=%q", CategoryFish.Clean())
	}
}
