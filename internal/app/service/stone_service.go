package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

var (
	ErrStoneNotFound     = errors.New("stone not found")
	ErrInvalidStone      = errors.New("invalid stone")
	ErrInvalidImportFile = errors.New("invalid stone import file")
)

// importColumns are the headers a stone import workbook must carry
var importColumns = []string{
	"stone_type",
	"size_mm_or_carat",
	"grade",
	"supplier",
	"cost_gbp",
	"default_markup_pct",
	"notes",
}

// StoneService manages the stone catalog
type StoneService interface {
	ListStones() ([]model.Stone, error)
	GetStoneByID(id uint) (*model.Stone, error)
	CreateStone(stone *model.Stone) error
	UpdateStone(stone *model.Stone) error
	DeleteStone(id uint) error
	ImportFromXLSX(r io.Reader) (int, error)
}

type stoneService struct {
	repo repository.StoneRepository
}

// NewStoneService creates the stone catalog service
func NewStoneService(repo repository.StoneRepository) StoneService {
	return &stoneService{repo: repo}
}

func (s *stoneService) ListStones() ([]model.Stone, error) {
	return s.repo.FindAll()
}

func (s *stoneService) GetStoneByID(id uint) (*model.Stone, error) {
	stone, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if stone == nil {
		return nil, ErrStoneNotFound
	}
	return stone, nil
}

func (s *stoneService) CreateStone(stone *model.Stone) error {
	if err := validateStone(stone); err != nil {
		return err
	}
	return s.repo.Create(stone)
}

func (s *stoneService) UpdateStone(stone *model.Stone) error {
	if err := validateStone(stone); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(stone.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStoneNotFound
	}
	return s.repo.Update(stone)
}

func (s *stoneService) DeleteStone(id uint) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStoneNotFound
	}
	return s.repo.Delete(id)
}

// ImportFromXLSX bulk-loads catalog entries from the first sheet of a
// workbook. The header row must contain every required column; rows that fail
// to parse abort the import with the row number in the error.
func (s *stoneService) ImportFromXLSX(r io.Reader) (int, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("%w: workbook has no sheets", ErrInvalidImportFile)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: missing header row", ErrInvalidImportFile)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.TrimSpace(strings.ToLower(header))] = i
	}

	var missing []string
	for _, required := range importColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: missing required columns: %s", ErrInvalidImportFile, strings.Join(missing, ", "))
	}

	cell := func(row []string, name string) string {
		index := columns[name]
		if index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	imported := 0
	for rowNum, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		costGBP, err := strconv.ParseFloat(cell(row, "cost_gbp"), 64)
		if err != nil {
			return imported, fmt.Errorf("%w: row %d: bad cost_gbp", ErrInvalidImportFile, rowNum+2)
		}
		markupPct, err := strconv.ParseFloat(cell(row, "default_markup_pct"), 64)
		if err != nil {
			return imported, fmt.Errorf("%w: row %d: bad default_markup_pct", ErrInvalidImportFile, rowNum+2)
		}

		stone := &model.Stone{
			StoneType:        cell(row, "stone_type"),
			SizeMMOrCarat:    cell(row, "size_mm_or_carat"),
			Grade:            cell(row, "grade"),
			Supplier:         cell(row, "supplier"),
			CostGBP:          costGBP,
			DefaultMarkupPct: markupPct,
			Notes:            cell(row, "notes"),
		}
		if err := validateStone(stone); err != nil {
			return imported, fmt.Errorf("%w: row %d: %v", ErrInvalidImportFile, rowNum+2, err)
		}
		if err := s.repo.Create(stone); err != nil {
			return imported, err
		}
		imported++
	}

	logger.Info("Imported stones from workbook", map[string]interface{}{
		"count": imported,
	})
	return imported, nil
}

func validateStone(stone *model.Stone) error {
	if stone.StoneType == "" || stone.SizeMMOrCarat == "" || stone.Grade == "" || stone.Supplier == "" {
		return fmt.Errorf("%w: stone_type, size_mm_or_carat, grade and supplier are required", ErrInvalidStone)
	}
	if stone.CostGBP < 0 {
		return fmt.Errorf("%w: cost_gbp must not be negative", ErrInvalidStone)
	}
	if stone.DefaultMarkupPct < 0 {
		return fmt.Errorf("%w: default_markup_pct must not be negative", ErrInvalidStone)
	}
	return nil
}
