package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/JapSyu/crawler/pkg/core/edinet"
	"github.com/JapSyu/crawler/pkg/core/fetchweb"
	"github.com/JapSyu/crawler/pkg/core/pipeline"
	"github.com/JapSyu/crawler/pkg/core/registry"
	"github.com/JapSyu/crawler/pkg/core/state"
	"github.com/JapSyu/crawler/pkg/core/store"
	"github.com/JapSyu/crawler/pkg/core/translate"
)

const (
	defaultRegistryPath = "config/companies.yaml"
	defaultStatePath    = "data/update_state.json"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	mode := "all"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	registryPath := os.Getenv("REGISTRY_PATH")
	if registryPath == "" {
		registryPath = defaultRegistryPath
	}

	reg, err := registry.Load(registryPath)
	if err != nil {
		log.Fatalf("Error: failed to load company registry: %v", err)
	}

	ctx := context.Background()

	if err := store.InitDB(ctx); err != nil {
		log.Fatalf("Error: failed to connect to database: %v", err)
	}
	defer store.Close()

	repo := store.NewCompanyRepo()
	if err := repo.CreateTables(ctx); err != nil {
		log.Fatalf("Error: failed to prepare tables: %v", err)
	}

	switch mode {
	case "all":
		runUpdate(ctx, reg, repo)
		runTranslate(ctx, reg, repo)
	case "edinet":
		runUpdate(ctx, reg, repo)
	case "translate":
		runTranslate(ctx, reg, repo)
	default:
		log.Fatalf("Error: unknown mode %q (expected all, edinet or translate)", mode)
	}
}

func runUpdate(ctx context.Context, reg *registry.Registry, repo *store.CompanyRepo) {
	apiKey := os.Getenv("EDINET_API_KEY")
	if apiKey == "" {
		log.Fatal("Error: EDINET_API_KEY is not set.")
	}

	fmt.Println("🚀 EDINET full update starting...")
	start := time.Now()

	client := edinet.NewClient(apiKey)
	locator := edinet.NewLocator(client)
	statePath := os.Getenv("UPDATE_STATE_PATH")
	if statePath == "" {
		statePath = defaultStatePath
	}

	updater := pipeline.NewUpdater(reg, locator, client, repo, state.NewStore(statePath))
	updater.Pages = fetchweb.NewFetcher()
	results, err := updater.RunFullUpdate(ctx)
	if err != nil {
		log.Fatalf("Error: update run failed: %v", err)
	}

	succeeded := 0
	for _, ok := range results {
		if ok {
			succeeded++
		}
	}
	fmt.Printf("✅ Update finished: %d/%d companies in %v\n", succeeded, len(results), time.Since(start).Round(time.Second))
}

func runTranslate(ctx context.Context, reg *registry.Registry, repo *store.CompanyRepo) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Println("Warning: GEMINI_API_KEY is not set, skipping translation pass.")
		return
	}

	fmt.Println("🌐 Translating report fields to Korean...")
	translator := &translate.Translator{}

	for _, company := range reg.Tracked() {
		report, err := repo.Load(ctx, company.Key)
		if err != nil {
			fmt.Printf("Warning: no stored report for %s, skipping: %v\n", company.Key, err)
			continue
		}

		translated, err := translator.TranslateReport(ctx, report)
		if err != nil {
			fmt.Printf("Warning: translation failed for %s: %v\n", company.Key, err)
			continue
		}
		if translated.Basic.HeadquartersKO == report.Basic.HeadquartersKO {
			continue
		}
		if err := repo.Save(ctx, translated); err != nil {
			fmt.Printf("Warning: failed to save translated report for %s: %v\n", company.Key, err)
			continue
		}
		fmt.Printf("Translated %s\n", company.Key)
	}
	fmt.Println("✅ Translation pass finished.")
}
