package domain

// NutritionProfile holds per-100g nutrient values for a canonical item.
// Calories, protein, carbohydrates and fat are always present and >= 0.
// Micronutrients are pointers: nil means the source did not report the
// value, which is distinct from a measured zero.
type NutritionProfile struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`

	Fiber     *float64 `json:"fiber,omitempty"`
	Sugar     *float64 `json:"sugar,omitempty"`
	Sodium    *float64 `json:"sodium,omitempty"`
	Calcium   *float64 `json:"calcium,omitempty"`
	Iron      *float64 `json:"iron,omitempty"`
	VitaminC  *float64 `json:"vitaminC,omitempty"`
	VitaminA  *float64 `json:"vitaminA,omitempty"`
	Potassium *float64 `json:"potassium,omitempty"`
	Magnesium *float64 `json:"magnesium,omitempty"`
}

// Valid reports whether all required nutrients are non-negative
func (n *NutritionProfile) Valid() bool {
	return n.Calories >= 0 && n.Protein >= 0 && n.Carbohydrates >= 0 && n.Fat >= 0
}

// addOptional accumulates an optional nutrient into dst, treating a nil
// source value as zero contribution but keeping dst nil until at least
// one item reported the nutrient.
func addOptional(dst **float64, src *float64) {
	if src == nil {
		return
	}
	if *dst == nil {
		v := *src
		*dst = &v
		return
	}
	**dst += *src
}

// Add accumulates another profile into n, for totals computation
func (n *NutritionProfile) Add(other NutritionProfile) {
	n.Calories += other.Calories
	n.Protein += other.Protein
	n.Carbohydrates += other.Carbohydrates
	n.Fat += other.Fat
	addOptional(&n.Fiber, other.Fiber)
	addOptional(&n.Sugar, other.Sugar)
	addOptional(&n.Sodium, other.Sodium)
	addOptional(&n.Calcium, other.Calcium)
	addOptional(&n.Iron, other.Iron)
	addOptional(&n.VitaminC, other.VitaminC)
	addOptional(&n.VitaminA, other.VitaminA)
	addOptional(&n.Potassium, other.Potassium)
	addOptional(&n.Magnesium, other.Magnesium)
}

// Scale returns a copy of n with every present value multiplied by factor
func (n NutritionProfile) Scale(factor float64) NutritionProfile {
	scaleOptional := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		s := *v * factor
		return &s
	}
	return NutritionProfile{
		Calories:      n.Calories * factor,
		Protein:       n.Protein * factor,
		Carbohydrates: n.Carbohydrates * factor,
		Fat:           n.Fat * factor,
		Fiber:         scaleOptional(n.Fiber),
		Sugar:         scaleOptional(n.Sugar),
		Sodium:        scaleOptional(n.Sodium),
		Calcium:       scaleOptional(n.Calcium),
		Iron:          scaleOptional(n.Iron),
		VitaminC:      scaleOptional(n.VitaminC),
		VitaminA:      scaleOptional(n.VitaminA),
		Potassium:     scaleOptional(n.Potassium),
		Magnesium:     scaleOptional(n.Magnesium),
	}
}
