package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/nutriscope/backend/internal/domain"
)

// Minimum normalized query length before any provider call is issued
const minQueryLength = 2

// Branded results below this count trigger the raw-ingredient
// supplement on the foods-and-drinks path
const defaultMinFoodResults = 5

// AggregatorConfig holds configuration for the aggregation service
type AggregatorConfig struct {
	MinFoodResults int
}

// Aggregator reconciles the two food databases into one canonical
// result stream. Provider failures degrade to zero contribution and
// never fail a search; caches are owned by the aggregator and injected
// at construction.
type Aggregator struct {
	branded        domain.BrandedProvider
	raw            domain.FoodProvider
	brandedCache   domain.CacheRepository
	rawCache       domain.CacheRepository
	minFoodResults int
}

// NewAggregator creates the unified food data service
func NewAggregator(
	branded domain.BrandedProvider,
	raw domain.FoodProvider,
	brandedCache domain.CacheRepository,
	rawCache domain.CacheRepository,
	config AggregatorConfig,
) *Aggregator {
	minFood := config.MinFoodResults
	if minFood <= 0 {
		minFood = defaultMinFoodResults
	}

	return &Aggregator{
		branded:        branded,
		raw:            raw,
		brandedCache:   brandedCache,
		rawCache:       rawCache,
		minFoodResults: minFood,
	}
}

// normalizeQuery lower-cases and trims a search query
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// providerResult is one provider's contribution to a fan-out search
type providerResult struct {
	items []domain.CanonicalFoodItem
	err   error
}

// searchBranded runs a cache-first search against the branded provider
func (a *Aggregator) searchBranded(ctx context.Context, query string) providerResult {
	return a.cachedSearch(ctx, a.branded, a.brandedCache, "off:"+query, query)
}

// searchRaw runs a cache-first search against the raw-ingredient provider
func (a *Aggregator) searchRaw(ctx context.Context, query string) providerResult {
	return a.cachedSearch(ctx, a.raw, a.rawCache, "usda:"+query, query)
}

// cachedSearch consults the provider's cache before hitting the network
func (a *Aggregator) cachedSearch(
	ctx context.Context,
	provider domain.FoodProvider,
	cache domain.CacheRepository,
	key, query string,
) providerResult {
	if cached, err := cache.Get(ctx, key); err == nil {
		if items, ok := cached.([]domain.CanonicalFoodItem); ok {
			return providerResult{items: items}
		}
	}

	items, err := provider.Search(ctx, query)
	if err != nil {
		return providerResult{err: err}
	}

	if err := cache.Set(ctx, key, items); err != nil {
		log.Printf("[Aggregator] cache write failed for %q: %v", key, err)
	}
	return providerResult{items: items}
}

// fanOut fires both providers concurrently and awaits both. Each task
// carries its own failure; one provider failing never cancels the other.
func (a *Aggregator) fanOut(ctx context.Context, query string) (branded, raw providerResult) {
	brandedCh := make(chan providerResult, 1)
	rawCh := make(chan providerResult, 1)

	go func() { brandedCh <- a.searchBranded(ctx, query) }()
	go func() { rawCh <- a.searchRaw(ctx, query) }()

	return <-brandedCh, <-rawCh
}

// shortQueryResult is the canonical empty result for sub-minimum queries
func shortQueryResult() *domain.SearchResult {
	return &domain.SearchResult{
		Items:   []domain.CanonicalFoodItem{},
		Status:  domain.StatusQueryTooShort,
		Message: "query must be at least 2 characters",
	}
}

// buildResult assembles a SearchResult from provider contributions.
// Items keep provider contribution order: primary first, supplement
// after.
func buildResult(start time.Time, primary, supplement providerResult, primaryIsBranded bool) *domain.SearchResult {
	items := make([]domain.CanonicalFoodItem, 0, len(primary.items)+len(supplement.items))
	items = append(items, primary.items...)
	items = append(items, supplement.items...)

	result := &domain.SearchResult{
		Items:      items,
		TotalCount: len(items),
		ElapsedMS:  time.Since(start).Milliseconds(),
		Status:     domain.StatusOK,
	}
	if primaryIsBranded {
		result.BrandedCount = len(primary.items)
		result.RawCount = len(supplement.items)
	} else {
		result.RawCount = len(primary.items)
		result.BrandedCount = len(supplement.items)
	}

	if primary.err != nil && supplement.err != nil {
		result.Status = domain.StatusAllProvidersDown
		result.Message = "all providers failed"
	}
	return result
}

// filterByType keeps only items of the wanted type
func filterByType(items []domain.CanonicalFoodItem, wanted domain.ItemType) []domain.CanonicalFoodItem {
	filtered := make([]domain.CanonicalFoodItem, 0, len(items))
	for _, item := range items {
		if item.Type == wanted {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SearchIngredients searches for raw ingredients. The raw-ingredient
// provider is primary; branded products pass only when their categories
// look ingredient-like.
func (a *Aggregator) SearchIngredients(ctx context.Context, query string) *domain.SearchResult {
	start := time.Now()
	normalized := normalizeQuery(query)
	if len(normalized) < minQueryLength {
		return shortQueryResult()
	}

	brandedRes, rawRes := a.fanOut(ctx, normalized)
	if rawRes.err != nil {
		log.Printf("[Aggregator] raw-ingredient provider failed: %v", rawRes.err)
	}
	if brandedRes.err != nil {
		log.Printf("[Aggregator] branded provider failed: %v", brandedRes.err)
	}

	brandedRes.items = filterByType(brandedRes.items, domain.TypeIngredient)
	return buildResult(start, rawRes, brandedRes, false)
}

// SearchFoodsAndDrinks searches for prepared foods and drinks. The
// branded provider is primary; when it contributes fewer than the
// minimum, food-like raw-ingredient results supplement it. The two sets
// are concatenated, never merged by identity.
func (a *Aggregator) SearchFoodsAndDrinks(ctx context.Context, query string) *domain.SearchResult {
	start := time.Now()
	normalized := normalizeQuery(query)
	if len(normalized) < minQueryLength {
		return shortQueryResult()
	}

	brandedRes, rawRes := a.fanOut(ctx, normalized)
	if brandedRes.err != nil {
		log.Printf("[Aggregator] branded provider failed: %v", brandedRes.err)
	}
	if rawRes.err != nil {
		log.Printf("[Aggregator] raw-ingredient provider failed: %v", rawRes.err)
	}

	supplement := providerResult{err: rawRes.err}
	if len(brandedRes.items) < a.minFoodResults {
		supplement.items = filterByType(rawRes.items, domain.TypeFoodDrink)
	}
	return buildResult(start, brandedRes, supplement, true)
}

// AdvancedSearch routes by the requested type filter, or fans out to
// both search modes when no type is given, then applies post-filters
// and sorting
func (a *Aggregator) AdvancedSearch(ctx context.Context, query string, filters domain.SearchFilters) *domain.SearchResult {
	start := time.Now()
	normalized := normalizeQuery(query)
	if len(normalized) < minQueryLength {
		result := shortQueryResult()
		result.Filters = &filters
		return result
	}

	var result *domain.SearchResult
	switch {
	case filters.Type != nil && *filters.Type == domain.TypeIngredient:
		result = a.SearchIngredients(ctx, query)
	case filters.Type != nil && *filters.Type == domain.TypeFoodDrink:
		result = a.SearchFoodsAndDrinks(ctx, query)
	default:
		result = a.searchBothModes(ctx, query)
	}

	result.Items = applyFilters(result.Items, filters)
	sortItems(result.Items, filters.SortBy)
	result.TotalCount = len(result.Items)
	result.Filters = &filters
	result.ElapsedMS = time.Since(start).Milliseconds()
	return result
}

// searchBothModes runs ingredient and food searches concurrently and
// concatenates, ingredients first
func (a *Aggregator) searchBothModes(ctx context.Context, query string) *domain.SearchResult {
	start := time.Now()

	ingredientsCh := make(chan *domain.SearchResult, 1)
	foodsCh := make(chan *domain.SearchResult, 1)
	go func() { ingredientsCh <- a.SearchIngredients(ctx, query) }()
	go func() { foodsCh <- a.SearchFoodsAndDrinks(ctx, query) }()

	ingredients, foods := <-ingredientsCh, <-foodsCh

	items := make([]domain.CanonicalFoodItem, 0, len(ingredients.Items)+len(foods.Items))
	items = append(items, ingredients.Items...)
	items = append(items, foods.Items...)

	result := &domain.SearchResult{
		Items:        items,
		TotalCount:   len(items),
		BrandedCount: ingredients.BrandedCount + foods.BrandedCount,
		RawCount:     ingredients.RawCount + foods.RawCount,
		ElapsedMS:    time.Since(start).Milliseconds(),
		Status:       domain.StatusOK,
	}
	if ingredients.Status == domain.StatusAllProvidersDown && foods.Status == domain.StatusAllProvidersDown {
		result.Status = domain.StatusAllProvidersDown
		result.Message = "all providers failed"
	}
	return result
}

// applyFilters applies the independent AND-combined post-filters
func applyFilters(items []domain.CanonicalFoodItem, filters domain.SearchFilters) []domain.CanonicalFoodItem {
	filtered := make([]domain.CanonicalFoodItem, 0, len(items))
	for _, item := range items {
		if filters.Source != nil && item.Source != *filters.Source {
			continue
		}
		if filters.MaxCalories != nil && item.Nutrition.Calories > *filters.MaxCalories {
			continue
		}
		if filters.MinProtein != nil && item.Nutrition.Protein < *filters.MinProtein {
			continue
		}
		if filters.MaxCarbs != nil && item.Nutrition.Carbohydrates > *filters.MaxCarbs {
			continue
		}
		if filters.MaxFat != nil && item.Nutrition.Fat > *filters.MaxFat {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// sortItems orders items by the requested key. An empty key keeps the
// stable insertion order.
func sortItems(items []domain.CanonicalFoodItem, key domain.SortKey) {
	switch key {
	case domain.SortName:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case domain.SortCaloriesAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Nutrition.Calories < items[j].Nutrition.Calories
		})
	case domain.SortProteinDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Nutrition.Protein > items[j].Nutrition.Protein
		})
	}
}

// LookupBarcode resolves a barcode against the branded provider only.
// Misses and provider failures surface as an unsuccessful result, not
// an error.
func (a *Aggregator) LookupBarcode(ctx context.Context, barcode string) *domain.LookupResult {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return &domain.LookupResult{Success: false, Message: "barcode is required"}
	}

	item, err := a.branded.LookupBarcode(ctx, barcode)
	if err != nil {
		log.Printf("[Aggregator] barcode lookup failed for %q: %v", barcode, err)
		return &domain.LookupResult{Success: false, Message: "product not found"}
	}
	return &domain.LookupResult{Success: true, Data: item}
}

// GetItemByID routes an id lookup by its source prefix. A malformed
// prefix is the one condition that surfaces as InvalidInput.
func (a *Aggregator) GetItemByID(ctx context.Context, id string) (*domain.CanonicalFoodItem, error) {
	source, err := domain.SourceForID(id)
	if err != nil {
		return nil, err
	}

	switch source {
	case domain.SourceBranded:
		return a.branded.LookupByID(ctx, id)
	case domain.SourceRawIngredient:
		return a.raw.LookupByID(ctx, id)
	default:
		// user items live in the profile subsystem, not behind a provider
		return nil, fmt.Errorf("%w: user item %q", domain.ErrNotFound, id)
	}
}

// UploadProduct submits a user-contributed product to the branded
// database. The outcome is reported via a result flag and message
// rather than an error.
func (a *Aggregator) UploadProduct(ctx context.Context, upload domain.ProductUpload) *domain.UploadResult {
	if strings.TrimSpace(upload.Barcode) == "" || strings.TrimSpace(upload.Name) == "" {
		return &domain.UploadResult{Success: false, Message: "barcode and name are required"}
	}

	if err := a.branded.Upload(ctx, upload); err != nil {
		log.Printf("[Aggregator] product upload failed for %q: %v", upload.Barcode, err)
		return &domain.UploadResult{Success: false, Message: "upload failed: " + err.Error()}
	}
	return &domain.UploadResult{Success: true, Message: "product submitted"}
}

// GetNutritionSummary totals and averages nutrition across items
func (a *Aggregator) GetNutritionSummary(items []domain.CanonicalFoodItem) *domain.NutritionSummary {
	summary := &domain.NutritionSummary{Count: len(items)}
	if len(items) == 0 {
		return summary
	}

	for _, item := range items {
		summary.Totals.Add(item.Nutrition)
	}
	summary.Average = summary.Totals.Scale(1 / float64(len(items)))
	return summary
}

// ClearAllCaches resets both provider caches immediately
func (a *Aggregator) ClearAllCaches() {
	a.brandedCache.Clear()
	a.rawCache.Clear()
}

// GetServiceStatus reports provider configuration and cache sizes
func (a *Aggregator) GetServiceStatus() *domain.ServiceStatus {
	return &domain.ServiceStatus{
		Branded: domain.ProviderStatus{
			Configured: a.branded.Configured(),
			CacheSize:  a.brandedCache.Size(),
		},
		RawIngredient: domain.ProviderStatus{
			Configured: a.raw.Configured(),
			CacheSize:  a.rawCache.Size(),
		},
	}
}
