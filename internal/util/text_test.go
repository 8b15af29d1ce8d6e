package util

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "control chars", input: "Bangus\x00\x1f Large", want: "Bangus Large"},
		{name: "whitespace runs", input: "  Corn \t Grits\n\nWhite ", want: "Corn Grits White"},
		{name: "c1 range", input: "Sugar\u0085(Refined)", want: "Sugar (Refined)"},
		{name: "empty", input: "\x01\x02", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"Bangus  Large", "Page 2 of 5", " \tChicken  Egg "}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
