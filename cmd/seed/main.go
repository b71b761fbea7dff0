package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Jwinter110022/jewellery-pricing-app/config"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/service"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
)

// starterStones is a minimal catalog for a fresh install. Only inserted when
// the stones table is empty.
var starterStones = []model.Stone{
	{StoneType: "Diamond", SizeMMOrCarat: "0.25ct", Grade: "VS1", Supplier: "Gemco", CostGBP: 150, DefaultMarkupPct: 80},
	{StoneType: "Diamond", SizeMMOrCarat: "0.50ct", Grade: "VS1", Supplier: "Gemco", CostGBP: 420, DefaultMarkupPct: 80},
	{StoneType: "Sapphire", SizeMMOrCarat: "3mm", Grade: "AA", Supplier: "Gemco", CostGBP: 40, DefaultMarkupPct: 100},
	{StoneType: "Sapphire", SizeMMOrCarat: "4mm", Grade: "AA", Supplier: "Stonex", CostGBP: 65, DefaultMarkupPct: 100},
	{StoneType: "Ruby", SizeMMOrCarat: "3mm", Grade: "A", Supplier: "Stonex", CostGBP: 55, DefaultMarkupPct: 100},
	{StoneType: "Emerald", SizeMMOrCarat: "3mm", Grade: "A", Supplier: "Stonex", CostGBP: 70, DefaultMarkupPct: 110},
	{StoneType: "Cubic Zirconia", SizeMMOrCarat: "3mm", Grade: "AAA", Supplier: "Gemco", CostGBP: 2, DefaultMarkupPct: 200},
}

// Seeds the default settings and a starter stone catalog. When an xlsx path is
// given, the catalog is bulk-imported from it instead.
//
// Usage: go run cmd/seed/main.go [stones.xlsx]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed settings:", err)
	}
	fmt.Println("Default settings seeded.")

	stoneRepo := repository.NewStoneRepository(db.GetDB())
	stoneService := service.NewStoneService(stoneRepo)

	if len(os.Args) >= 2 {
		filePath := os.Args[1]
		fmt.Printf("Importing stones from: %s\n", filePath)

		file, err := os.Open(filePath)
		if err != nil {
			log.Fatal("Failed to open XLSX file:", err)
		}
		defer file.Close()

		imported, err := stoneService.ImportFromXLSX(file)
		if err != nil {
			log.Fatalf("Import failed after %d stones: %v", imported, err)
		}
		fmt.Printf("Import completed successfully. Stones imported: %d\n", imported)
		return
	}

	existing, err := stoneService.ListStones()
	if err != nil {
		log.Fatal("Failed to check stone catalog:", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Stone catalog already has %d entries, skipping starter stones.\n", len(existing))
		return
	}

	for i := range starterStones {
		if err := stoneService.CreateStone(&starterStones[i]); err != nil {
			log.Fatal("Failed to seed starter stone:", err)
		}
	}
	fmt.Printf("Starter stone catalog seeded: %d entries.\n", len(starterStones))
}
