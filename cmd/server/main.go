package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nutriscope/backend/config"
	httpDelivery "github.com/nutriscope/backend/internal/delivery/http"
	"github.com/nutriscope/backend/internal/infrastructure/cache"
	"github.com/nutriscope/backend/internal/infrastructure/openfoodfacts"
	"github.com/nutriscope/backend/internal/infrastructure/usda"
	"github.com/nutriscope/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriScope Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Per-provider caches with their own TTLs
	brandedCache := cache.NewMemoryCache(cfg.Branded.CacheTTL)
	rawCache := cache.NewMemoryCache(cfg.RawIngredient.CacheTTL)
	log.Printf("Cache TTLs: branded=%s raw-ingredient=%s", cfg.Branded.CacheTTL, cfg.RawIngredient.CacheTTL)

	offClient := openfoodfacts.NewClient(cfg.Branded.BaseURL, openfoodfacts.Credentials{
		UserID:   cfg.Branded.UserID,
		Password: cfg.Branded.Password,
	}, cfg.Branded.Timeout)
	usdaClient := usda.NewClient(cfg.RawIngredient.APIKey, cfg.RawIngredient.BaseURL, cfg.RawIngredient.Timeout)

	if cfg.RawIngredient.APIKey != "" {
		log.Printf("Raw-ingredient API configured: %s", cfg.RawIngredient.BaseURL)
	} else {
		log.Printf("WARNING: raw-ingredient API key NOT CONFIGURED - API calls will fail!")
	}
	if cfg.Branded.UserID == "" {
		log.Printf("Branded upload credentials not configured - product uploads disabled")
	}

	aggregator := usecase.NewAggregator(
		openfoodfacts.NewProvider(offClient),
		usda.NewProvider(usdaClient),
		brandedCache,
		rawCache,
		usecase.AggregatorConfig{
			MinFoodResults: cfg.Aggregator.MinFoodResults,
		},
	)
	engine := usecase.NewEnergyEngine()

	handler := httpDelivery.NewHandler(aggregator, engine)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
