package usda

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/nutriscope/backend/internal/domain"
)

// Records whose description is shorter than this are dropped silently
const minNameLength = 3

// Provider adapts the FoodData Central client to the canonical
// FoodProvider contract
type Provider struct {
	client *Client
}

// NewProvider wraps a FoodData Central client
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Configured reports whether the underlying client has credentials
func (p *Provider) Configured() bool {
	return p.client.Configured()
}

// Search queries FoodData Central and maps results to canonical items.
// Records with missing or too-short names are skipped silently; a record
// that fails normalization is logged and skipped without aborting the
// batch.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.CanonicalFoodItem, error) {
	resp, err := p.client.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CanonicalFoodItem, 0, len(resp.Foods))
	for _, food := range resp.Foods {
		if len(strings.TrimSpace(food.Description)) < minNameLength {
			continue
		}
		item, err := mapFood(&food, query)
		if err != nil {
			log.Printf("[USDA] skipping record fdcId=%d: %v", food.FdcID, err)
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// LookupByID fetches a single food by its prefixed canonical id
func (p *Provider) LookupByID(ctx context.Context, id string) (*domain.CanonicalFoodItem, error) {
	fdcID := strings.TrimPrefix(id, "usda:")
	if fdcID == id || fdcID == "" {
		return nil, fmt.Errorf("%w: not a raw-ingredient id: %q", domain.ErrInvalidInput, id)
	}
	if _, err := strconv.ParseInt(fdcID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: malformed fdc id: %q", domain.ErrInvalidInput, fdcID)
	}

	food, err := p.client.GetFood(ctx, fdcID)
	if err != nil {
		return nil, err
	}
	return mapFood(food, "")
}

// mapFood converts one provider record into a canonical item. The
// original search query participates in the food-like classification.
func mapFood(food *foodRecord, query string) (*domain.CanonicalFoodItem, error) {
	nutrition := mapNutrition(food.Nutrients)
	if !nutrition.Valid() {
		return nil, fmt.Errorf("%w: negative required nutrient", domain.ErrParseFailure)
	}

	itemType := domain.TypeIngredient
	if isFoodLike(food.Description, food.FoodCategory, query) {
		itemType = domain.TypeFoodDrink
	}

	portions := make([]domain.Portion, 0, len(food.Portions))
	for _, p := range food.Portions {
		desc := p.PortionDescription
		if desc == "" {
			desc = p.Modifier
		}
		if desc == "" || p.GramWeight <= 0 {
			continue
		}
		portions = append(portions, domain.Portion{
			Description: desc,
			GramWeight:  p.GramWeight,
		})
	}

	item := &domain.CanonicalFoodItem{
		ID:        fmt.Sprintf("usda:%d", food.FdcID),
		Name:      cleanName(food.Description),
		Source:    domain.SourceRawIngredient,
		Type:      itemType,
		Nutrition: nutrition,
		Raw: &domain.RawIngredientMetadata{
			Category: food.FoodCategory,
			DataType: food.DataType,
			Portions: portions,
		},
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}
