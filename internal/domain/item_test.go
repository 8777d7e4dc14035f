package domain

import (
	"errors"
	"testing"
)

func TestSourceForID(t *testing.T) {
	tests := []struct {
		id      string
		want    Source
		wantErr bool
	}{
		{"off:3017620422003", SourceBranded, false},
		{"usda:171477", SourceRawIngredient, false},
		{"user:abc-123", SourceUser, false},
		{"171477", "", true},
		{"fdc:171477", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := SourceForID(tt.id)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("SourceForID(%q) error = %v, want ErrInvalidInput", tt.id, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("SourceForID(%q) unexpected error: %v", tt.id, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SourceForID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestCanonicalFoodItemValidate(t *testing.T) {
	valid := CanonicalFoodItem{
		ID:     "off:123",
		Name:   "Test Product",
		Source: SourceBranded,
		Type:   TypeFoodDrink,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}

	mismatched := valid
	mismatched.ID = "usda:123"
	if err := mismatched.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("id/source mismatch not rejected: %v", err)
	}

	wrongMeta := valid
	wrongMeta.Raw = &RawIngredientMetadata{Category: "Poultry"}
	if err := wrongMeta.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("branded item with raw metadata not rejected: %v", err)
	}

	unknownSource := valid
	unknownSource.Source = "mystery"
	if err := unknownSource.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown source not rejected: %v", err)
	}
}

func TestParseNutriScore(t *testing.T) {
	if got := ParseNutriScore("A"); got != NutriScoreA {
		t.Errorf("ParseNutriScore(A) = %v, want a", got)
	}
	if got := ParseNutriScore("e"); got != NutriScoreE {
		t.Errorf("ParseNutriScore(e) = %v, want e", got)
	}
	if got := ParseNutriScore("x"); got != NutriScoreUnknown {
		t.Errorf("ParseNutriScore(x) = %v, want unknown", got)
	}
	if got := ParseNutriScore(""); got != NutriScoreUnknown {
		t.Errorf("ParseNutriScore(empty) = %v, want unknown", got)
	}
}

func TestParseNovaGroup(t *testing.T) {
	if got := ParseNovaGroup(4); got != NovaUltraProcessed {
		t.Errorf("ParseNovaGroup(4) = %v, want 4", got)
	}
	if got := ParseNovaGroup(0); got != NovaUnknown {
		t.Errorf("ParseNovaGroup(0) = %v, want unknown", got)
	}
	if got := ParseNovaGroup(7); got != NovaUnknown {
		t.Errorf("ParseNovaGroup(7) = %v, want unknown", got)
	}
}

func TestNutritionProfileAdd(t *testing.T) {
	fiber := 3.0
	moreFiber := 2.0

	var total NutritionProfile
	total.Add(NutritionProfile{Calories: 100, Protein: 5, Fiber: &fiber})
	total.Add(NutritionProfile{Calories: 50, Protein: 2, Fiber: &moreFiber})
	total.Add(NutritionProfile{Calories: 10})

	if total.Calories != 160 || total.Protein != 7 {
		t.Errorf("totals = %v kcal / %v g protein, want 160/7", total.Calories, total.Protein)
	}
	if total.Fiber == nil || *total.Fiber != 5 {
		t.Errorf("fiber total = %v, want 5", total.Fiber)
	}
	if total.Sodium != nil {
		t.Error("sodium was never reported and must stay nil")
	}
}

func TestNutritionProfileScale(t *testing.T) {
	sugar := 10.0
	profile := NutritionProfile{Calories: 200, Fat: 8, Sugar: &sugar}

	half := profile.Scale(0.5)

	if half.Calories != 100 || half.Fat != 4 {
		t.Errorf("scaled = %v kcal / %v g fat, want 100/4", half.Calories, half.Fat)
	}
	if half.Sugar == nil || *half.Sugar != 5 {
		t.Errorf("scaled sugar = %v, want 5", half.Sugar)
	}
	if profile.Calories != 200 {
		t.Error("Scale must not mutate the receiver")
	}
}
