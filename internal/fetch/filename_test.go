package fetch

import "testing"

func TestParseDateFromFilename(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     string
		ok       bool
	}{
		{name: "full month", filename: "December-10-2025-DPI-AFC.pdf", want: "2025-12-10", ok: true},
		{name: "short month", filename: "Dec-9-2025-DPI.pdf", want: "2025-12-09", ok: true},
		{name: "single digit day", filename: "January-5-2026-Daily-Price-Index.pdf", want: "2026-01-05", ok: true},
		{name: "no date", filename: "Daily-Price-Index.pdf", ok: false},
		{name: "garbage", filename: "prices.pdf", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDateFromFilename(tc.filename)
			if ok != tc.ok {
				t.Fatalf("ok=%v want %v", ok, tc.ok)
			}
			if ok && got.Format("2006-01-02") != tc.want {
				t.Fatalf("got %s want %s", got.Format("2006-01-02"), tc.want)
			}
		})
	}
}
