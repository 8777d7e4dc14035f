package openfoodfacts

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nutriscope/backend/internal/domain"
)

// Records whose display name is shorter than this are dropped silently
const minNameLength = 2

// Provider adapts the Open Food Facts client to the canonical
// FoodProvider contract
type Provider struct {
	client *Client
}

// NewProvider wraps an Open Food Facts client
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// CanUpload reports whether the underlying client can submit products
func (p *Provider) CanUpload() bool {
	return p.client.CanUpload()
}

// Configured reports whether the underlying client is configured
func (p *Provider) Configured() bool {
	return p.client.Configured()
}

// Search queries the branded database and maps results to canonical
// items. Records with missing or too-short names are skipped silently;
// a record that fails normalization is logged and skipped without
// aborting the batch.
func (p *Provider) Search(ctx context.Context, query string) ([]domain.CanonicalFoodItem, error) {
	resp, err := p.client.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CanonicalFoodItem, 0, len(resp.Products))
	for _, product := range resp.Products {
		if len(strings.TrimSpace(product.ProductName)) < minNameLength {
			continue
		}
		item, err := mapProduct(&product)
		if err != nil {
			log.Printf("[OFF] skipping record code=%s: %v", product.Code, err)
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// LookupByID fetches a single product by its prefixed canonical id
func (p *Provider) LookupByID(ctx context.Context, id string) (*domain.CanonicalFoodItem, error) {
	barcode := strings.TrimPrefix(id, "off:")
	if barcode == id || barcode == "" {
		return nil, fmt.Errorf("%w: not a branded id: %q", domain.ErrInvalidInput, id)
	}
	return p.LookupBarcode(ctx, barcode)
}

// LookupBarcode fetches a single product by barcode
func (p *Provider) LookupBarcode(ctx context.Context, barcode string) (*domain.CanonicalFoodItem, error) {
	product, err := p.client.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return mapProduct(product)
}

// Upload submits a user-contributed product to the branded database
func (p *Provider) Upload(ctx context.Context, upload domain.ProductUpload) error {
	return p.client.UploadProduct(ctx, upload)
}

// mapProduct converts one provider record into a canonical item
func mapProduct(product *productRecord) (*domain.CanonicalFoodItem, error) {
	if product.Code == "" {
		return nil, fmt.Errorf("%w: product without barcode", domain.ErrParseFailure)
	}

	nutrition := mapNutrition(product.Nutriments)
	if !nutrition.Valid() {
		return nil, fmt.Errorf("%w: negative required nutrient", domain.ErrParseFailure)
	}

	itemType := domain.TypeFoodDrink
	if isIngredientLike(product.CategoriesTags) {
		itemType = domain.TypeIngredient
	}

	name := strings.TrimSpace(product.ProductName)
	if product.Brands != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(product.Brands)) {
		name = name + " (" + product.Brands + ")"
	}

	item := &domain.CanonicalFoodItem{
		ID:        "off:" + product.Code,
		Name:      name,
		Source:    domain.SourceBranded,
		Type:      itemType,
		Nutrition: nutrition,
		Branded: &domain.BrandedMetadata{
			Barcode:     product.Code,
			NutriScore:  domain.ParseNutriScore(product.NutriScore),
			NovaGroup:   domain.ParseNovaGroup(int(product.NovaGroup)),
			DietaryTags: dietaryTags(product.LabelsTags),
		},
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}
