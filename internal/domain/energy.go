package domain

// Gender selects the formula variant for body composition math
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// FitnessGoal determines the direction of the calorie adjustment
type FitnessGoal string

const (
	GoalLoseFat     FitnessGoal = "lose-fat"
	GoalBuildMuscle FitnessGoal = "build-muscle"
	GoalMaintain    FitnessGoal = "maintain"
)

// WeightTrend is the measured direction of recent weight change, used
// for the feedback correction on the calorie target
type WeightTrend string

const (
	TrendGained WeightTrend = "gained"
	TrendLost   WeightTrend = "lost"
	TrendStable WeightTrend = "stable"
)

// UserEnergyProfile is the input to the energy calculation engine.
// It is owned by the account subsystem; the engine only reads it.
type UserEnergyProfile struct {
	WeightKG           float64     `json:"weightKg"`
	BodyFatPercent     float64     `json:"bodyFatPercent"`
	Gender             Gender      `json:"gender"`
	BaseMetabolicRate  float64     `json:"baseMetabolicRate"`
	ActivityMultiplier float64     `json:"activityMultiplier"`
	Goal               FitnessGoal `json:"goal"`
	GoalAdjustPercent  float64     `json:"goalAdjustPercent"`

	// Feedback correction state
	WeightTrend           WeightTrend `json:"weightTrend,omitempty"`
	WeightChangeKG        float64     `json:"weightChangeKg"`
	ManualAdjustmentSteps int         `json:"manualAdjustmentSteps"`
}

// Macro identifies one of the three macronutrients for manual adjustment
type Macro string

const (
	MacroProtein Macro = "protein"
	MacroFat     Macro = "fat"
	MacroCarbs   Macro = "carbs"
)

// Calories per gram of each macronutrient
const (
	CaloriesPerGramProtein = 4.0
	CaloriesPerGramFat     = 9.0
	CaloriesPerGramCarbs   = 4.0
)

// MacroTargets holds the computed calorie and macronutrient targets.
// Percentages are the source of truth; grams are always re-derived from
// percentage x total calories / calories-per-gram.
type MacroTargets struct {
	TotalCalories int `json:"totalCalories"`

	ProteinGrams int `json:"proteinGrams"`
	FatGrams     int `json:"fatGrams"`
	CarbsGrams   int `json:"carbsGrams"`

	ProteinPercent int `json:"proteinPercent"`
	FatPercent     int `json:"fatPercent"`
	CarbsPercent   int `json:"carbsPercent"`

	LeanBodyMassKG float64 `json:"leanBodyMassKg"`
}
