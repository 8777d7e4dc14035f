package domain

import (
	"fmt"
	"strings"
)

// Source identifies which database a canonical item came from
type Source string

const (
	SourceBranded       Source = "branded"
	SourceRawIngredient Source = "raw-ingredient"
	SourceUser          Source = "user"
)

// idPrefix returns the id prefix that items from this source must carry
func (s Source) idPrefix() string {
	switch s {
	case SourceBranded:
		return "off:"
	case SourceRawIngredient:
		return "usda:"
	case SourceUser:
		return "user:"
	}
	return ""
}

// IsValid reports whether s is one of the known sources
func (s Source) IsValid() bool {
	return s == SourceBranded || s == SourceRawIngredient || s == SourceUser
}

// SourceForID resolves the source from an item id prefix.
// Returns ErrInvalidInput when the prefix is unknown or missing.
func SourceForID(id string) (Source, error) {
	switch {
	case strings.HasPrefix(id, "off:"):
		return SourceBranded, nil
	case strings.HasPrefix(id, "usda:"):
		return SourceRawIngredient, nil
	case strings.HasPrefix(id, "user:"):
		return SourceUser, nil
	}
	return "", fmt.Errorf("%w: unrecognized id prefix in %q", ErrInvalidInput, id)
}

// ItemType classifies a canonical item as a raw ingredient or a prepared food/drink
type ItemType string

const (
	TypeIngredient ItemType = "ingredient"
	TypeFoodDrink  ItemType = "food-drink"
)

// CanonicalFoodItem is the unified, provider-agnostic food representation.
// Items are constructed by the provider adapters and treated as immutable
// once handed to the aggregator.
type CanonicalFoodItem struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Source    Source                 `json:"source"`
	Type      ItemType               `json:"type"`
	Nutrition NutritionProfile       `json:"nutrition"`
	Branded   *BrandedMetadata       `json:"branded,omitempty"`
	Raw       *RawIngredientMetadata `json:"rawIngredient,omitempty"`
}

// Validate checks the id-prefix/source invariant and that exactly one
// metadata variant matches the source.
func (i *CanonicalFoodItem) Validate() error {
	if !i.Source.IsValid() {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, i.Source)
	}
	if !strings.HasPrefix(i.ID, i.Source.idPrefix()) {
		return fmt.Errorf("%w: id %q does not match source %q", ErrInvalidInput, i.ID, i.Source)
	}
	if i.Source == SourceBranded && i.Raw != nil {
		return fmt.Errorf("%w: branded item carries raw-ingredient metadata", ErrInvalidInput)
	}
	if i.Source == SourceRawIngredient && i.Branded != nil {
		return fmt.Errorf("%w: raw-ingredient item carries branded metadata", ErrInvalidInput)
	}
	return nil
}

// BrandedMetadata is the provider metadata variant for branded-database items
type BrandedMetadata struct {
	Barcode     string     `json:"barcode"`
	NutriScore  NutriScore `json:"nutriScore"`
	NovaGroup   NovaGroup  `json:"novaGroup"`
	DietaryTags []string   `json:"dietaryTags,omitempty"`
}

// Portion is a named household measure with its gram weight
type Portion struct {
	Description string  `json:"description"`
	GramWeight  float64 `json:"gramWeight"`
}

// RawIngredientMetadata is the provider metadata variant for raw-ingredient items
type RawIngredientMetadata struct {
	Category string    `json:"category,omitempty"`
	DataType string    `json:"dataType,omitempty"`
	Portions []Portion `json:"portions,omitempty"`
}

// SearchStatus distinguishes why a result set may be empty
type SearchStatus string

const (
	StatusOK               SearchStatus = "ok"
	StatusQueryTooShort    SearchStatus = "query-too-short"
	StatusAllProvidersDown SearchStatus = "all-providers-failed"
)

// SearchFilters are the optional post-filters applied by advanced search
type SearchFilters struct {
	Type        *ItemType `json:"type,omitempty"`
	Source      *Source   `json:"source,omitempty"`
	MaxCalories *float64  `json:"maxCalories,omitempty"`
	MinProtein  *float64  `json:"minProtein,omitempty"`
	MaxCarbs    *float64  `json:"maxCarbs,omitempty"`
	MaxFat      *float64  `json:"maxFat,omitempty"`
	SortBy      SortKey   `json:"sortBy,omitempty"`
}

// SortKey selects result ordering for advanced search
type SortKey string

const (
	SortNone        SortKey = ""
	SortName        SortKey = "name"
	SortCaloriesAsc SortKey = "calories"
	SortProteinDesc SortKey = "protein"
)

// SearchResult is an ordered set of canonical items plus provenance counts.
// Item order is provider contribution order, then any explicit sort.
type SearchResult struct {
	Items        []CanonicalFoodItem `json:"items"`
	TotalCount   int                 `json:"totalCount"`
	BrandedCount int                 `json:"brandedCount"`
	RawCount     int                 `json:"rawIngredientCount"`
	ElapsedMS    int64               `json:"elapsedMs"`
	Filters      *SearchFilters      `json:"filters,omitempty"`
	Status       SearchStatus        `json:"status"`
	Message      string              `json:"message,omitempty"`
}

// NutritionSummary aggregates nutrition across a set of items
type NutritionSummary struct {
	Totals  NutritionProfile `json:"totals"`
	Average NutritionProfile `json:"average"`
	Count   int              `json:"count"`
}

// ProductUpload carries the fields for a user-contributed product
// submission to the branded database
type ProductUpload struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Brands   string  `json:"brands,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// UploadResult reports the outcome of a product upload to the branded database
type UploadResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LookupResult reports a barcode lookup outcome without raising on misses
type LookupResult struct {
	Success bool               `json:"success"`
	Data    *CanonicalFoodItem `json:"data"`
	Message string             `json:"message,omitempty"`
}

// ProviderStatus describes one provider's configuration and cache state
type ProviderStatus struct {
	Configured bool `json:"configured"`
	CacheSize  int  `json:"cacheSize"`
}

// ServiceStatus is the aggregator health snapshot
type ServiceStatus struct {
	Branded       ProviderStatus `json:"branded"`
	RawIngredient ProviderStatus `json:"rawIngredient"`
}
