package parser

import "strings"

// ResolveUnit derives the measurement unit from commodity identity and the
// raw specification text. Chicken eggs sell per piece; cooking oils carry a
// volume from the specification; everything else is per kilogram. Always
// returns a unit.
func ResolveUnit(specText, canonicalName string) string {
	upperSpec := strings.ToUpper(specText)
	upperName := strings.ToUpper(canonicalName)

	if strings.Contains(upperName, "EGG") && strings.Contains(upperName, "CHICKEN") {
		return "pc"
	}

	if strings.Contains(upperName, "COOKING OIL") {
		switch {
		case strings.Contains(upperSpec, "350") && strings.Contains(upperSpec, "ML"):
			return "350 ml"
		case strings.Contains(upperSpec, "500") && strings.Contains(upperSpec, "ML"):
			return "500 ml"
		case strings.Contains(upperSpec, "1") && (strings.Contains(upperSpec, "LITER") || strings.Contains(upperSpec, "L")):
			return "1 L"
		}
		return "L"
	}

	return "kg"
}
