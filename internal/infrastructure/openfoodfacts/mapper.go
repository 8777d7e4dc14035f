package openfoodfacts

import (
	"strconv"
	"strings"

	"github.com/nutriscope/backend/internal/domain"
)

// Ordered candidate keys per canonical nutrient. Values in the
// nutriments map are already per-100g; the first present non-negative
// value wins.
var (
	keysCalories  = []string{"energy-kcal_100g", "energy-kcal", "energy_100g", "energy"}
	keysProtein   = []string{"proteins_100g", "proteins"}
	keysCarbs     = []string{"carbohydrates_100g", "carbohydrates"}
	keysFat       = []string{"fat_100g", "fat"}
	keysFiber     = []string{"fiber_100g", "fiber"}
	keysSugar     = []string{"sugars_100g", "sugars"}
	keysSodium    = []string{"sodium_100g", "sodium"}
	keysCalcium   = []string{"calcium_100g", "calcium"}
	keysIron      = []string{"iron_100g", "iron"}
	keysVitaminC  = []string{"vitamin-c_100g", "vitamin-c"}
	keysVitaminA  = []string{"vitamin-a_100g", "vitamin-a"}
	keysPotassium = []string{"potassium_100g", "potassium"}
	keysMagnesium = []string{"magnesium_100g", "magnesium"}
)

// numericValue extracts a number from the loosely typed nutriments map.
// The API serves values both as JSON numbers and as strings.
func numericValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// resolveOK returns the first present non-negative value for the
// candidate keys
func resolveOK(nutriments map[string]interface{}, keys []string) (float64, bool) {
	for _, key := range keys {
		raw, present := nutriments[key]
		if !present {
			continue
		}
		if v, ok := numericValue(raw); ok && v >= 0 {
			return v, true
		}
	}
	return 0, false
}

// resolve defaults absent required nutrients to zero
func resolve(nutriments map[string]interface{}, keys []string) float64 {
	v, _ := resolveOK(nutriments, keys)
	return v
}

// resolveOptional returns a pointer only when the nutrient is present,
// keeping "unknown" distinct from a measured zero
func resolveOptional(nutriments map[string]interface{}, keys []string) *float64 {
	if v, ok := resolveOK(nutriments, keys); ok {
		return &v
	}
	return nil
}

// mapNutrition converts a product's nutriments map into the canonical
// per-100g nutrition profile
func mapNutrition(nutriments map[string]interface{}) domain.NutritionProfile {
	return domain.NutritionProfile{
		Calories:      resolve(nutriments, keysCalories),
		Protein:       resolve(nutriments, keysProtein),
		Carbohydrates: resolve(nutriments, keysCarbs),
		Fat:           resolve(nutriments, keysFat),
		Fiber:         resolveOptional(nutriments, keysFiber),
		Sugar:         resolveOptional(nutriments, keysSugar),
		Sodium:        resolveOptional(nutriments, keysSodium),
		Calcium:       resolveOptional(nutriments, keysCalcium),
		Iron:          resolveOptional(nutriments, keysIron),
		VitaminC:      resolveOptional(nutriments, keysVitaminC),
		VitaminA:      resolveOptional(nutriments, keysVitaminA),
		Potassium:     resolveOptional(nutriments, keysPotassium),
		Magnesium:     resolveOptional(nutriments, keysMagnesium),
	}
}

// ingredientCategories mark a branded product as ingredient-like.
// Matched by substring against the product's category tags.
var ingredientCategories = []string{
	"fruits", "vegetables", "meats", "fish", "dairy-products",
	"cereals", "spices", "oils", "nuts", "legumes", "herbs",
}

// isIngredientLike reports whether any category tag names a basic
// ingredient family
func isIngredientLike(categoriesTags []string) bool {
	for _, tag := range categoriesTags {
		lower := strings.ToLower(tag)
		for _, cat := range ingredientCategories {
			if strings.Contains(lower, cat) {
				return true
			}
		}
	}
	return false
}

// dietaryTags extracts human-readable dietary classification strings
// from label tags like "en:vegan" or "en:gluten-free"
func dietaryTags(labelsTags []string) []string {
	tags := make([]string, 0, len(labelsTags))
	for _, tag := range labelsTags {
		if idx := strings.Index(tag, ":"); idx >= 0 {
			tag = tag[idx+1:]
		}
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
