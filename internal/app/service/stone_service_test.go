package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/db"
)

func setupStoneServiceTest(t *testing.T) StoneService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewStoneService(repository.NewStoneRepository(testDB))
}

func newStone() *model.Stone {
	return &model.Stone{
		StoneType:        "Sapphire",
		SizeMMOrCarat:    "3mm",
		Grade:            "AA",
		Supplier:         "Gemco",
		CostGBP:          40,
		DefaultMarkupPct: 100,
	}
}

func TestStoneService_CRUD(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	stone := newStone()
	require.NoError(t, stoneService.CreateStone(stone))
	require.NotZero(t, stone.ID)

	fetched, err := stoneService.GetStoneByID(stone.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sapphire", fetched.StoneType)

	fetched.CostGBP = 45
	require.NoError(t, stoneService.UpdateStone(fetched))
	fetched, err = stoneService.GetStoneByID(stone.ID)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, fetched.CostGBP, 0.001)

	stones, err := stoneService.ListStones()
	require.NoError(t, err)
	require.Len(t, stones, 1)

	require.NoError(t, stoneService.DeleteStone(stone.ID))
	_, err = stoneService.GetStoneByID(stone.ID)
	assert.ErrorIs(t, err, ErrStoneNotFound)

	stones, err = stoneService.ListStones()
	require.NoError(t, err)
	assert.Empty(t, stones)
}

func TestStoneService_Validation(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	tests := []struct {
		name   string
		mutate func(*model.Stone)
	}{
		{"missing stone type", func(s *model.Stone) { s.StoneType = "" }},
		{"missing size", func(s *model.Stone) { s.SizeMMOrCarat = "" }},
		{"missing grade", func(s *model.Stone) { s.Grade = "" }},
		{"missing supplier", func(s *model.Stone) { s.Supplier = "" }},
		{"negative cost", func(s *model.Stone) { s.CostGBP = -1 }},
		{"negative markup", func(s *model.Stone) { s.DefaultMarkupPct = -10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stone := newStone()
			tt.mutate(stone)
			assert.ErrorIs(t, stoneService.CreateStone(stone), ErrInvalidStone)
		})
	}
}

func TestStoneService_UpdateUnknown(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	stone := newStone()
	stone.ID = 99
	assert.ErrorIs(t, stoneService.UpdateStone(stone), ErrStoneNotFound)
	assert.ErrorIs(t, stoneService.DeleteStone(99), ErrStoneNotFound)
}

func buildImportWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestStoneService_ImportFromXLSX(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	buf := buildImportWorkbook(t, [][]interface{}{
		{"stone_type", "size_mm_or_carat", "grade", "supplier", "cost_gbp", "default_markup_pct", "notes"},
		{"Sapphire", "3mm", "AA", "Gemco", 40, 100, "round brilliant"},
		{"Diamond", "0.25ct", "VS1", "Gemco", 150, 80, ""},
	})

	imported, err := stoneService.ImportFromXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	stones, err := stoneService.ListStones()
	require.NoError(t, err)
	require.Len(t, stones, 2)
}

func TestStoneService_ImportMissingColumns(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	buf := buildImportWorkbook(t, [][]interface{}{
		{"stone_type", "grade", "supplier"},
		{"Sapphire", "AA", "Gemco"},
	})

	_, err := stoneService.ImportFromXLSX(buf)
	require.ErrorIs(t, err, ErrInvalidImportFile)
	assert.Contains(t, err.Error(), "cost_gbp")
}

func TestStoneService_ImportBadRowReportsRowNumber(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	buf := buildImportWorkbook(t, [][]interface{}{
		{"stone_type", "size_mm_or_carat", "grade", "supplier", "cost_gbp", "default_markup_pct", "notes"},
		{"Sapphire", "3mm", "AA", "Gemco", 40, 100, ""},
		{"Diamond", "0.25ct", "VS1", "Gemco", "not-a-number", 80, ""},
	})

	imported, err := stoneService.ImportFromXLSX(buf)
	require.ErrorIs(t, err, ErrInvalidImportFile)
	assert.Contains(t, err.Error(), "row 3")
	assert.Equal(t, 1, imported)
}

func TestStoneService_ImportRejectsGarbage(t *testing.T) {
	stoneService := setupStoneServiceTest(t)

	_, err := stoneService.ImportFromXLSX(strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, ErrInvalidImportFile)
}
