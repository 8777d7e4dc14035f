package domain

// NutriScore is the A-E food quality grade assigned by the branded database
type NutriScore string

const (
	NutriScoreA       NutriScore = "a"
	NutriScoreB       NutriScore = "b"
	NutriScoreC       NutriScore = "c"
	NutriScoreD       NutriScore = "d"
	NutriScoreE       NutriScore = "e"
	NutriScoreUnknown NutriScore = ""
)

// ParseNutriScore maps a raw provider grade string to a closed NutriScore value.
// Anything outside a-e collapses to unknown rather than passing through.
func ParseNutriScore(raw string) NutriScore {
	switch raw {
	case "a", "A":
		return NutriScoreA
	case "b", "B":
		return NutriScoreB
	case "c", "C":
		return NutriScoreC
	case "d", "D":
		return NutriScoreD
	case "e", "E":
		return NutriScoreE
	}
	return NutriScoreUnknown
}

// Color returns the display color associated with the grade
func (s NutriScore) Color() string {
	switch s {
	case NutriScoreA:
		return "#038141"
	case NutriScoreB:
		return "#85BB2F"
	case NutriScoreC:
		return "#FECB02"
	case NutriScoreD:
		return "#EE8100"
	case NutriScoreE:
		return "#E63E11"
	}
	return "#888888"
}

// NovaGroup is the 1-4 food processing classification scale
type NovaGroup int

const (
	NovaUnknown             NovaGroup = 0
	NovaUnprocessed         NovaGroup = 1
	NovaProcessedIngredient NovaGroup = 2
	NovaProcessed           NovaGroup = 3
	NovaUltraProcessed      NovaGroup = 4
)

// ParseNovaGroup maps a raw provider value to a closed NovaGroup.
// Out-of-range values collapse to unknown.
func ParseNovaGroup(raw int) NovaGroup {
	if raw >= 1 && raw <= 4 {
		return NovaGroup(raw)
	}
	return NovaUnknown
}

// Description returns the standard description for the processing level
func (g NovaGroup) Description() string {
	switch g {
	case NovaUnprocessed:
		return "Unprocessed or minimally processed foods"
	case NovaProcessedIngredient:
		return "Processed culinary ingredients"
	case NovaProcessed:
		return "Processed foods"
	case NovaUltraProcessed:
		return "Ultra-processed foods"
	}
	return "Unknown processing level"
}
