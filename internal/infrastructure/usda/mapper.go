package usda

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nutriscope/backend/internal/domain"
)

// Nutrient codes from FoodData Central. The legacy nutrient numbers
// (strings like "208") appear on SR Legacy and Survey records; the
// modern nutrient IDs appear on Foundation records. Each canonical
// nutrient resolves through an ordered candidate list and the first
// present non-negative value wins.
var (
	codesCalories  = []string{"208", "1008"}
	codesProtein   = []string{"203", "1003"}
	codesCarbs     = []string{"205", "1005"}
	codesFat       = []string{"204", "1004"}
	codesFiber     = []string{"291", "1079"}
	codesSugar     = []string{"269", "2000"}
	codesSodium    = []string{"307", "1093"}
	codesCalcium   = []string{"301", "1087"}
	codesIron      = []string{"303", "1089"}
	codesVitaminC  = []string{"401", "1162"}
	codesVitaminA  = []string{"320", "1106"}
	codesPotassium = []string{"306", "1092"}
	codesMagnesium = []string{"304", "1090"}
)

// buildNutrientTable indexes a food's nutrient rows by both the legacy
// nutrient number and the numeric nutrient ID
func buildNutrientTable(nutrients []nutrientRecord) map[string]float64 {
	table := make(map[string]float64, len(nutrients)*2)
	for _, n := range nutrients {
		amount := n.Value
		if amount == 0 && n.Amount != 0 {
			amount = n.Amount
		}
		if n.NutrientNumber != "" {
			if _, seen := table[n.NutrientNumber]; !seen {
				table[n.NutrientNumber] = amount
			}
		}
		if n.NutrientID != 0 {
			id := strconv.FormatInt(n.NutrientID, 10)
			if _, seen := table[id]; !seen {
				table[id] = amount
			}
		}
	}
	return table
}

// resolve returns the first present non-negative value for the candidate
// codes, or 0 when none is present
func resolve(table map[string]float64, codes []string) float64 {
	v, _ := resolveOK(table, codes)
	return v
}

// resolveOK reports presence so optional nutrients can stay nil when the
// record has no data rather than defaulting to zero
func resolveOK(table map[string]float64, codes []string) (float64, bool) {
	for _, code := range codes {
		if v, ok := table[code]; ok && v >= 0 {
			return v, true
		}
	}
	return 0, false
}

// resolveOptional returns a pointer only when the nutrient is present
func resolveOptional(table map[string]float64, codes []string) *float64 {
	if v, ok := resolveOK(table, codes); ok {
		return &v
	}
	return nil
}

// mapNutrition converts a food's nutrient rows into the canonical
// per-100g nutrition profile
func mapNutrition(nutrients []nutrientRecord) domain.NutritionProfile {
	table := buildNutrientTable(nutrients)
	return domain.NutritionProfile{
		Calories:      resolve(table, codesCalories),
		Protein:       resolve(table, codesProtein),
		Carbohydrates: resolve(table, codesCarbs),
		Fat:           resolve(table, codesFat),
		Fiber:         resolveOptional(table, codesFiber),
		Sugar:         resolveOptional(table, codesSugar),
		Sodium:        resolveOptional(table, codesSodium),
		Calcium:       resolveOptional(table, codesCalcium),
		Iron:          resolveOptional(table, codesIron),
		VitaminC:      resolveOptional(table, codesVitaminC),
		VitaminA:      resolveOptional(table, codesVitaminA),
		Potassium:     resolveOptional(table, codesPotassium),
		Magnesium:     resolveOptional(table, codesMagnesium),
	}
}

// prepQualifiers are trailing clauses that become a parenthetical suffix
var prepQualifiers = map[string]bool{
	"raw": true, "cooked": true, "boiled": true, "roasted": true,
	"grilled": true, "baked": true, "fried": true, "steamed": true,
	"braised": true, "broiled": true,
}

// gradeSuffixes are grading/source clauses dropped from display names
var gradeSuffixes = map[string]bool{
	"all grades": true, "choice": true, "select": true, "prime": true,
	"grade a": true, "grade b": true, "usda commodity": true,
	"composite of trimmed retail cuts": true, "commercial": true,
}

// cleanName converts a USDA technical description like
// "Chicken, broilers or fryers, breast, meat only, raw" into a display
// name. Preparation qualifiers become a parenthetical, "with"/"without"
// clauses and grading suffixes are removed, and the result is
// title-cased.
func cleanName(description string) string {
	parts := strings.Split(description, ",")
	if len(parts) == 0 {
		return description
	}

	kept := []string{strings.TrimSpace(parts[0])}
	suffix := ""

	for _, part := range parts[1:] {
		clause := strings.TrimSpace(part)
		lower := strings.ToLower(clause)
		switch {
		case prepQualifiers[lower]:
			suffix = clause
		case strings.HasPrefix(lower, "with ") || strings.HasPrefix(lower, "without "):
			// dropped
		case gradeSuffixes[lower]:
			// dropped
		default:
			kept = append(kept, clause)
		}
	}

	name := titleCase(strings.Join(kept, ", "))
	if suffix != "" {
		name += " (" + titleCase(suffix) + ")"
	}
	return name
}

// titleCase upper-cases the first letter of each word
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// foodKeywords mark a record as prepared/food-like
var foodKeywords = []string{
	"prepared", "cooked", "baked", "fried", "grilled", "steamed",
	"sandwich", "pizza", "burger", "meal", "dish", "recipe",
	"fast food", "restaurant", "frozen", "canned",
}

// rawKeywords mark a record as a raw ingredient
var rawKeywords = []string{"raw", "fresh", "uncooked", "plain"}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isFoodLike classifies a record as prepared-food rather than raw
// ingredient. A food-keyword hit always qualifies; a raw-keyword hit
// alone disqualifies, unless the original search query itself carried a
// food keyword, which overrides the exclusion.
func isFoodLike(name, category, query string) bool {
	text := name + " " + category
	if containsAny(text, foodKeywords) {
		return true
	}
	if containsAny(text, rawKeywords) {
		return containsAny(query, foodKeywords)
	}
	return true
}
