package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
)

func setupQuoteServiceTest(t *testing.T, fake *fakeProvider) (QuoteService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	settingRepo := repository.NewSettingRepository(testDB)
	require.NoError(t, settingRepo.SeedDefaults())

	priceRepo := repository.NewMetalPriceRepository(testDB)
	priceService := NewPriceService(priceRepo, settingRepo, fake)

	quoteRepo := repository.NewQuoteRepository(testDB)
	stoneRepo := repository.NewStoneRepository(testDB)
	return NewQuoteService(quoteRepo, stoneRepo, settingRepo, priceService), testDB
}

func TestQuoteService_PriceCommission(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, _ := setupQuoteServiceTest(t, fake)

	result, err := quoteService.PriceCommission(CommissionQuoteRequest{
		MetalSymbol:     model.Gold,
		MetalMultiplier: 0.375,
		WeightGrams:     12,
		LabourHours:     6,
	})

	require.NoError(t, err)
	assert.Equal(t, model.QuoteTypeQuote, result.QuoteType)
	assert.Equal(t, "fake", result.PriceProvider)
	assert.Empty(t, result.Warning)
	assert.Nil(t, result.Estimate)
	assert.Zero(t, result.QuoteID)

	// Hand-checked against the default settings (5% waste, GBP 35/hr labour,
	// 10% overhead, 25% profit, 20% VAT).
	assert.InDelta(t, 260.42, result.Breakdown.MetalBaseCostGBP, 0.01)
	assert.InDelta(t, 273.44, result.Breakdown.MetalCostGBP, 0.01)
	assert.InDelta(t, 210.0, result.Breakdown.LabourCostGBP, 0.01)
	assert.InDelta(t, 483.44, result.Breakdown.BaseSubtotalGBP, 0.01)
	assert.InDelta(t, 797.68, result.Breakdown.FinalPriceGBP, 0.01)
}

func TestQuoteService_PriceCommissionRejectsBadSymbol(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, _ := setupQuoteServiceTest(t, fake)

	_, err := quoteService.PriceCommission(CommissionQuoteRequest{
		MetalSymbol:     "XCU",
		MetalMultiplier: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidMetalSymbol)
	assert.Equal(t, 0, fake.callCount)
}

func TestQuoteService_PriceCommissionNoSpotPrice(t *testing.T) {
	fake := &fakeProvider{err: assert.AnError}
	quoteService, _ := setupQuoteServiceTest(t, fake)

	_, err := quoteService.PriceCommission(CommissionQuoteRequest{
		MetalSymbol:     model.Gold,
		MetalMultiplier: 1,
	})

	assert.ErrorIs(t, err, ErrNoSpotPrice)
}

func TestQuoteService_StoneResolution(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, testDB := setupQuoteServiceTest(t, fake)

	stoneRepo := repository.NewStoneRepository(testDB)
	stone := &model.Stone{
		StoneType:        "Sapphire",
		SizeMMOrCarat:    "3mm",
		Grade:            "AA",
		Supplier:         "Gemco",
		CostGBP:          40,
		DefaultMarkupPct: 100,
	}
	require.NoError(t, stoneRepo.Create(stone))

	result, err := quoteService.PriceCommission(CommissionQuoteRequest{
		MetalSymbol:     model.Gold,
		MetalMultiplier: 0.375,
		WeightGrams:     0,
		Stones: []CommissionStoneRequest{
			{StoneID: stone.ID, Qty: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Breakdown.StoneLines, 1)
	line := result.Breakdown.StoneLines[0]
	assert.Equal(t, "Sapphire 3mm (AA, Gemco)", line.Label)
	assert.Equal(t, 2, line.Qty)
	assert.InDelta(t, 40.0, line.UnitCostGBP, 0.001)
	assert.InDelta(t, 100.0, line.MarkupPct, 0.001)
	assert.InDelta(t, 160.0, line.LineCostGBP, 0.001)

	// Per-line override replaces the catalog markup.
	override := 50.0
	result, err = quoteService.PriceCommission(CommissionQuoteRequest{
		MetalSymbol:     model.Gold,
		MetalMultiplier: 0.375,
		Stones: []CommissionStoneRequest{
			{StoneID: stone.ID, Qty: 2, MarkupPct: &override},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 120.0, result.Breakdown.StoneLines[0].LineCostGBP, 0.001)
}

func TestQuoteService_UnknownStoneID(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, _ := setupQuoteServiceTest(t, fake)

	_, err := quoteService.PriceCommission(CommissionQuoteRequest{
		MetalSymbol:     model.Gold,
		MetalMultiplier: 1,
		Stones: []CommissionStoneRequest{
			{StoneID: 999, Qty: 1},
		},
	})

	assert.ErrorIs(t, err, ErrStoneNotFound)
}

func TestQuoteService_EstimateType(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, _ := setupQuoteServiceTest(t, fake)

	result, err := quoteService.PriceCommission(CommissionQuoteRequest{
		QuoteType:       model.QuoteTypeEstimate,
		MetalSymbol:     model.Gold,
		MetalMultiplier: 0.375,
		WeightGrams:     12,
		LabourHours:     6,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Estimate)
	// Default variance is 10% either side of the final price.
	assert.InDelta(t, 10.0, result.Estimate.EstimateVariancePct, 0.001)
	assert.InDelta(t, result.Breakdown.FinalPriceGBP*0.9, result.Estimate.EstimateMinGBP, 0.01)
	assert.InDelta(t, result.Breakdown.FinalPriceGBP*1.1, result.Estimate.EstimateMaxGBP, 0.01)

	// Default validity is 7 days.
	expected := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	assert.Equal(t, expected, result.ValidUntil)
}

func TestQuoteService_SavePersistsQuoteWithSnapshots(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, testDB := setupQuoteServiceTest(t, fake)

	stoneRepo := repository.NewStoneRepository(testDB)
	stone := &model.Stone{
		StoneType:        "Diamond",
		SizeMMOrCarat:    "0.25ct",
		Grade:            "VS1",
		Supplier:         "Gemco",
		CostGBP:          150,
		DefaultMarkupPct: 80,
	}
	require.NoError(t, stoneRepo.Create(stone))

	result, err := quoteService.PriceCommission(CommissionQuoteRequest{
		CustomerName:    "A Smith",
		MetalSymbol:     model.Gold,
		AlloyLabel:      "9ct yellow",
		MetalMultiplier: 0.375,
		WeightGrams:     12,
		LabourHours:     6,
		Stones: []CommissionStoneRequest{
			{StoneID: stone.ID, Qty: 1},
		},
		Save: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, result.QuoteID)
	assert.NotEmpty(t, result.Reference)

	saved, err := quoteService.GetCommissionQuoteByID(result.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, "A Smith", saved.CustomerName)
	assert.Equal(t, result.Reference, saved.Reference)
	assert.InDelta(t, result.Breakdown.FinalPriceGBP, saved.FinalPriceGBP, 0.001)
	require.Len(t, saved.Stones, 1)
	assert.Equal(t, stone.ID, saved.Stones[0].StoneID)

	// Snapshots replay without reference to live settings or catalog.
	var settings model.Settings
	require.NoError(t, json.Unmarshal([]byte(saved.SettingsJSON), &settings))
	assert.InDelta(t, 35.0, settings.LabourRateGBPPerHr, 0.001)

	quotes, err := quoteService.ListCommissionQuotes(10)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
}

func TestQuoteService_GetUnknownQuote(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, _ := setupQuoteServiceTest(t, fake)

	_, err := quoteService.GetCommissionQuoteByID(42)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestQuoteService_ClearCommissionQuotes(t *testing.T) {
	fake := &fakeProvider{prices: map[string]float64{"XAU": 1800}}
	quoteService, testDB := setupQuoteServiceTest(t, fake)

	stoneRepo := repository.NewStoneRepository(testDB)
	stone := &model.Stone{
		StoneType:        "Sapphire",
		SizeMMOrCarat:    "3mm",
		Grade:            "AA",
		Supplier:         "Gemco",
		CostGBP:          40,
		DefaultMarkupPct: 100,
	}
	require.NoError(t, stoneRepo.Create(stone))

	for i := 0; i < 2; i++ {
		_, err := quoteService.PriceCommission(CommissionQuoteRequest{
			MetalSymbol:     model.Gold,
			MetalMultiplier: 0.375,
			WeightGrams:     12,
			Stones: []CommissionStoneRequest{
				{StoneID: stone.ID, Qty: 1},
			},
			Save: true,
		})
		require.NoError(t, err)
	}

	deleted, err := quoteService.ClearCommissionQuotes()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	quotes, err := quoteService.ListCommissionQuotes(10)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	// Stone lines go with their quotes.
	var stoneLines int64
	require.NoError(t, testDB.Model(&model.QuoteStone{}).Count(&stoneLines).Error)
	assert.Zero(t, stoneLines)

	// Clearing an empty history is a no-op.
	deleted, err = quoteService.ClearCommissionQuotes()
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
