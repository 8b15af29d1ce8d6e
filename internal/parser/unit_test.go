package parser

import "testing"

func TestResolveUnit(t *testing.T) {
	cases := []struct {
		name string
		spec string
		comm string
		want string
	}{
		{name: "chicken egg per piece", spec: "Medium (56-60 grams/pc)", comm: "Chicken Egg", want: "pc"},
		{name: "oil 350ml", spec: "350 ml", comm: "Cooking Oil (Minola)", want: "350 ml"},
		{name: "oil 500ml", spec: "500 ml bottle", comm: "Cooking Oil (Palm)", want: "500 ml"},
		{name: "oil one liter", spec: "1 Liter", comm: "Cooking Oil (Coconut)", want: "1 L"},
		{name: "oil no marker", spec: "", comm: "Cooking Oil (Palm)", want: "L"},
		{name: "default kilogram", spec: "Large", comm: "Bangus Large", want: "kg"},
		{name: "duck egg stays kg", spec: "", comm: "Duck Egg", want: "kg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveUnit(tc.spec, tc.comm); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
