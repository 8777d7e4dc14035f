package usecase

import (
	"math"

	"github.com/nutriscope/backend/internal/domain"
)

// Protein multipliers in g/kg of lean body mass. The thresholds are
// gender-specific body-fat percentages; the first threshold the value
// is <= selects the multiplier, beyond the last threshold the final
// multiplier applies.
var (
	proteinMultipliers      = []float64{3.55, 3.40, 3.25, 3.10, 2.95, 2.80, 2.65}
	maleBodyFatThresholds   = []float64{8, 12, 15, 20, 25, 30, 35}
	femaleBodyFatThresholds = []float64{15, 20, 25, 30, 35, 40, 45}
)

// Fat calorie share bounds: body fat interpolates linearly onto this range
const (
	fatShareMin = 20.0
	fatShareMax = 35.0
)

// Gender-specific body fat bounds for the fat share interpolation
const (
	maleBodyFatMin   = 8.0
	maleBodyFatMax   = 35.0
	femaleBodyFatMin = 15.0
	femaleBodyFatMax = 45.0
)

// Per-macro percentage bands for manual rebalancing
const (
	proteinPctMin = 10
	proteinPctMax = 50
	fatPctMin     = 15
	fatPctMax     = 45
	carbsPctMin   = 10
	carbsPctMax   = 70
)

// Calorie deltas for the feedback correction on the calorie target
const (
	caloriesPerKGTrend    = 500
	caloriesPerManualStep = 100
)

// EnergyEngine converts body composition inputs into calorie and
// macronutrient targets. All methods are pure: identical inputs yield
// identical outputs and nothing is stored between calls.
//
// The engine does not validate physical plausibility; callers must
// reject non-positive weight or body fat outside [0, 100) before
// invoking it.
type EnergyEngine struct{}

// NewEnergyEngine creates the calculation engine
func NewEnergyEngine() *EnergyEngine {
	return &EnergyEngine{}
}

// LeanBodyMass estimates fat-free mass in kilograms
func LeanBodyMass(weightKG, bodyFatPercent float64) float64 {
	return weightKG * (1 - bodyFatPercent/100)
}

// proteinMultiplier selects the g/kg-LBM protein multiplier from the
// gender-specific body fat step function
func proteinMultiplier(gender domain.Gender, bodyFatPercent float64) float64 {
	thresholds := maleBodyFatThresholds
	if gender == domain.GenderFemale {
		thresholds = femaleBodyFatThresholds
	}
	for i, threshold := range thresholds {
		if bodyFatPercent <= threshold {
			return proteinMultipliers[i]
		}
	}
	return proteinMultipliers[len(proteinMultipliers)-1]
}

// fatSharePercent interpolates body fat onto the fat calorie share
// range, clamped to its bounds
func fatSharePercent(gender domain.Gender, bodyFatPercent float64) float64 {
	lo, hi := maleBodyFatMin, maleBodyFatMax
	if gender == domain.GenderFemale {
		lo, hi = femaleBodyFatMin, femaleBodyFatMax
	}

	fraction := (bodyFatPercent - lo) / (hi - lo)
	share := fatShareMin + fraction*(fatShareMax-fatShareMin)
	return math.Min(fatShareMax, math.Max(fatShareMin, share))
}

// CalculateTDCI computes the total daily calorie intake target:
// BMR x activity multiplier, adjusted by the fitness goal percentage,
// then corrected by the measured weight trend and manual steps.
func (e *EnergyEngine) CalculateTDCI(profile domain.UserEnergyProfile) int {
	baseline := e.baselineTDCI(profile)
	return e.adjustedTDCI(baseline, profile)
}

// baselineTDCI is BMR x activity with the goal percentage applied.
// A lose-fat goal always subtracts its share; build-muscle adds it.
func (e *EnergyEngine) baselineTDCI(profile domain.UserEnergyProfile) float64 {
	base := profile.BaseMetabolicRate * profile.ActivityMultiplier

	pct := profile.GoalAdjustPercent
	switch profile.Goal {
	case domain.GoalLoseFat:
		base -= base * math.Abs(pct) / 100
	case domain.GoalBuildMuscle:
		base += base * math.Abs(pct) / 100
	default:
		base += base * pct / 100
	}
	return base
}

// adjustedTDCI applies the feedback correction: a measured weight gain
// pulls the target down, a measured loss pushes it up, converging the
// actual trend toward the goal. With a stable trend only the manual
// steps apply.
func (e *EnergyEngine) adjustedTDCI(baseline float64, profile domain.UserEnergyProfile) int {
	adjustment := profile.WeightChangeKG*caloriesPerKGTrend +
		float64(profile.ManualAdjustmentSteps)*caloriesPerManualStep

	switch profile.WeightTrend {
	case domain.TrendGained:
		baseline -= adjustment
	case domain.TrendLost:
		baseline += adjustment
	default:
		baseline += float64(profile.ManualAdjustmentSteps) * caloriesPerManualStep
	}
	return int(math.Round(baseline))
}

// CalculateTargets runs the full pipeline: lean body mass, protein
// target, fat target, carb remainder, then percentage derivation with
// carbs as the residual so the three shares sum to exactly 100.
func (e *EnergyEngine) CalculateTargets(profile domain.UserEnergyProfile) domain.MacroTargets {
	totalCalories := e.CalculateTDCI(profile)
	return e.targetsForCalories(profile, totalCalories)
}

// targetsForCalories derives macro targets for a fixed calorie budget
func (e *EnergyEngine) targetsForCalories(profile domain.UserEnergyProfile, totalCalories int) domain.MacroTargets {
	lbm := LeanBodyMass(profile.WeightKG, profile.BodyFatPercent)

	proteinGrams := int(math.Round(lbm * proteinMultiplier(profile.Gender, profile.BodyFatPercent)))
	fatShare := fatSharePercent(profile.Gender, profile.BodyFatPercent)

	total := float64(totalCalories)
	fatGrams := int(math.Round(total * fatShare / 100 / domain.CaloriesPerGramFat))

	proteinCalories := float64(proteinGrams) * domain.CaloriesPerGramProtein
	fatCalories := float64(fatGrams) * domain.CaloriesPerGramFat
	// Not clamped: negative carbs signal a calorie budget too small for
	// the protein and fat targets, which the caller must validate.
	carbsGrams := int(math.Round((total - proteinCalories - fatCalories) / domain.CaloriesPerGramCarbs))

	proteinPct := int(math.Round(proteinCalories / total * 100))
	fatPct := int(math.Round(fatShare))
	carbsPct := 100 - proteinPct - fatPct

	return domain.MacroTargets{
		TotalCalories:  totalCalories,
		ProteinGrams:   proteinGrams,
		FatGrams:       fatGrams,
		CarbsGrams:     carbsGrams,
		ProteinPercent: proteinPct,
		FatPercent:     fatPct,
		CarbsPercent:   carbsPct,
		LeanBodyMassKG: lbm,
	}
}

// macroBand returns the allowed percentage band for a macro
func macroBand(macro domain.Macro) (min, max int) {
	switch macro {
	case domain.MacroProtein:
		return proteinPctMin, proteinPctMax
	case domain.MacroFat:
		return fatPctMin, fatPctMax
	default:
		return carbsPctMin, carbsPctMax
	}
}

func clampToBand(value int, macro domain.Macro) int {
	min, max := macroBand(macro)
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AdjustMacro rebalances the targets after the user sets one macro's
// percentage. The requested value is clamped to the macro's band and
// the resulting deficit or surplus is split evenly between the other
// two macros, each also clamped. When clamping leaves the sum off 100,
// the residual goes back to the adjusted macro if its band allows;
// otherwise the off-by-residual sum stands. Grams are re-derived from
// the new percentages.
func (e *EnergyEngine) AdjustMacro(targets domain.MacroTargets, macro domain.Macro, requestedPercent int) domain.MacroTargets {
	percents := map[domain.Macro]int{
		domain.MacroProtein: targets.ProteinPercent,
		domain.MacroFat:     targets.FatPercent,
		domain.MacroCarbs:   targets.CarbsPercent,
	}

	newValue := clampToBand(requestedPercent, macro)
	delta := newValue - percents[macro]
	percents[macro] = newValue

	others := otherMacros(macro)
	// Split the surplus/deficit evenly; an odd delta gives the extra
	// point to the first of the remaining macros in protein/fat/carbs
	// order.
	firstShare := delta/2 + delta%2
	secondShare := delta / 2
	percents[others[0]] = clampToBand(percents[others[0]]-firstShare, others[0])
	percents[others[1]] = clampToBand(percents[others[1]]-secondShare, others[1])

	sum := percents[domain.MacroProtein] + percents[domain.MacroFat] + percents[domain.MacroCarbs]
	if residual := 100 - sum; residual != 0 {
		candidate := percents[macro] + residual
		if min, max := macroBand(macro); candidate >= min && candidate <= max {
			percents[macro] = candidate
		}
	}

	return e.targetsFromPercents(targets.TotalCalories, targets.LeanBodyMassKG, percents)
}

// otherMacros returns the two macros not being adjusted, in
// protein/fat/carbs order
func otherMacros(adjusted domain.Macro) [2]domain.Macro {
	switch adjusted {
	case domain.MacroProtein:
		return [2]domain.Macro{domain.MacroFat, domain.MacroCarbs}
	case domain.MacroFat:
		return [2]domain.Macro{domain.MacroProtein, domain.MacroCarbs}
	default:
		return [2]domain.Macro{domain.MacroProtein, domain.MacroFat}
	}
}

// targetsFromPercents re-derives gram targets from percentages, the
// single source of truth
func (e *EnergyEngine) targetsFromPercents(totalCalories int, lbm float64, percents map[domain.Macro]int) domain.MacroTargets {
	total := float64(totalCalories)
	gramsFor := func(pct int, caloriesPerGram float64) int {
		return int(math.Round(total * float64(pct) / 100 / caloriesPerGram))
	}

	return domain.MacroTargets{
		TotalCalories:  totalCalories,
		ProteinGrams:   gramsFor(percents[domain.MacroProtein], domain.CaloriesPerGramProtein),
		FatGrams:       gramsFor(percents[domain.MacroFat], domain.CaloriesPerGramFat),
		CarbsGrams:     gramsFor(percents[domain.MacroCarbs], domain.CaloriesPerGramCarbs),
		ProteinPercent: percents[domain.MacroProtein],
		FatPercent:     percents[domain.MacroFat],
		CarbsPercent:   percents[domain.MacroCarbs],
		LeanBodyMassKG: lbm,
	}
}
