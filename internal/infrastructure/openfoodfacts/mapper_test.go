package openfoodfacts

import "testing"

func TestMapNutrition_FieldFallback(t *testing.T) {
	// The per-100g key wins over the bare key when both are present
	nutriments := map[string]interface{}{
		"energy-kcal_100g": 250.0,
		"energy-kcal":      1046.0,
		"proteins":         8.0,
		"fat_100g":         12.0,
	}

	profile := mapNutrition(nutriments)

	if profile.Calories != 250 {
		t.Errorf("Calories = %v, want 250", profile.Calories)
	}
	if profile.Protein != 8 {
		t.Errorf("Protein = %v, want 8 (bare key fallback)", profile.Protein)
	}
	if profile.Fat != 12 {
		t.Errorf("Fat = %v, want 12", profile.Fat)
	}
	if profile.Carbohydrates != 0 {
		t.Errorf("Carbohydrates = %v, want 0 when absent", profile.Carbohydrates)
	}
}

func TestMapNutrition_StringValues(t *testing.T) {
	nutriments := map[string]interface{}{
		"energy-kcal_100g": "480",
		"sugars_100g":      " 22.5 ",
		"fiber_100g":       "not-a-number",
	}

	profile := mapNutrition(nutriments)

	if profile.Calories != 480 {
		t.Errorf("Calories = %v, want 480 parsed from string", profile.Calories)
	}
	if profile.Sugar == nil || *profile.Sugar != 22.5 {
		t.Errorf("Sugar = %v, want 22.5", profile.Sugar)
	}
	if profile.Fiber != nil {
		t.Error("expected unparseable fiber to stay nil")
	}
}

func TestMapNutrition_OptionalNilVersusZero(t *testing.T) {
	nutriments := map[string]interface{}{
		"sodium_100g": 0.0,
	}

	profile := mapNutrition(nutriments)

	if profile.Sodium == nil || *profile.Sodium != 0 {
		t.Errorf("Sodium = %v, want present zero", profile.Sodium)
	}
	if profile.Calcium != nil {
		t.Error("expected absent calcium to stay nil")
	}
}

func TestIsIngredientLike(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"vegetable category", []string{"en:plant-based-foods", "en:vegetables"}, true},
		{"dairy category", []string{"en:dairy-products"}, true},
		{"snack product", []string{"en:snacks", "en:chocolates"}, false},
		{"no categories", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isIngredientLike(tt.tags); got != tt.want {
				t.Errorf("isIngredientLike(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestDietaryTags(t *testing.T) {
	tags := dietaryTags([]string{"en:vegan", "en:gluten-free", "fr:", "organic"})

	want := []string{"vegan", "gluten-free", "organic"}
	if len(tags) != len(want) {
		t.Fatalf("dietaryTags returned %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}
