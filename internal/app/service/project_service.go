package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/model"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/pricing"
	"github.com/Jwinter110022/jewellery-pricing-app/internal/app/repository"
	"github.com/Jwinter110022/jewellery-pricing-app/pkg/logger"
)

var (
	ErrProjectNotFound = errors.New("completed project not found")
	ErrInvalidProject  = errors.New("invalid completed project")
)

// costRowPrefill maps breakdown fields to cost row categories, in display
// order. Rows start with actual equal to quoted; the caller edits actuals.
var costRowPrefill = []struct {
	category string
	field    string
}{
	{"Metal", "metal_cost_gbp"},
	{"Stones", "stone_cost_gbp"},
	{"Supplier Markup", "supplier_markup_cost_gbp"},
	{"Labour", "labour_cost_gbp"},
	{"Overhead", "overhead_cost_gbp"},
	{"Profit", "profit_cost_gbp"},
	{"VAT", "vat_amount_gbp"},
}

// ProjectCostRowRequest is one quoted-versus-actual line in a recording request
type ProjectCostRowRequest struct {
	Category      string  `json:"category" binding:"required"`
	QuotedCostGBP float64 `json:"quoted_cost_gbp" binding:"gte=0"`
	ActualCostGBP float64 `json:"actual_cost_gbp" binding:"gte=0"`
}

// CompletedProjectRequest records a finished commission. When cost rows are
// omitted and a quote is linked, the rows are prefilled from the quote's
// breakdown snapshot.
type CompletedProjectRequest struct {
	ProjectName  string                  `json:"project_name" binding:"required"`
	CustomerName string                  `json:"customer_name"`
	QuoteID      *uint                   `json:"quote_id,omitempty"`
	Notes        string                  `json:"notes"`
	CostRows     []ProjectCostRowRequest `json:"cost_rows"`
}

// ProjectService records completed projects for quoted-versus-actual review
type ProjectService interface {
	RecordProject(req CompletedProjectRequest) (*model.CompletedProject, error)
	ListProjects(limit int) ([]model.CompletedProject, error)
	GetProjectByID(id uint) (*model.CompletedProject, error)
	PrefillCostRows(quoteID uint) ([]ProjectCostRowRequest, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	quoteRepo   repository.QuoteRepository
}

// NewProjectService creates the completed project service
func NewProjectService(projectRepo repository.ProjectRepository, quoteRepo repository.QuoteRepository) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		quoteRepo:   quoteRepo,
	}
}

// RecordProject validates and persists a completed project. Totals and
// variances are computed here, never trusted from the request.
func (s *projectService) RecordProject(req CompletedProjectRequest) (*model.CompletedProject, error) {
	name := strings.TrimSpace(req.ProjectName)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidProject)
	}

	var linkedQuote *model.CommissionQuote
	if req.QuoteID != nil {
		quote, err := s.quoteRepo.FindCommissionQuoteByID(*req.QuoteID)
		if err != nil {
			return nil, err
		}
		if quote == nil {
			return nil, fmt.Errorf("%w: id %d", ErrQuoteNotFound, *req.QuoteID)
		}
		linkedQuote = quote
	}

	costRows := req.CostRows
	if len(costRows) == 0 && linkedQuote != nil {
		costRows = prefillFromQuote(linkedQuote)
	}

	rows, quotedTotal, actualTotal, err := buildCostRows(costRows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: at least one cost row is required", ErrInvalidProject)
	}

	variance := actualTotal - quotedTotal
	project := &model.CompletedProject{
		ProjectName:    name,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		QuoteID:        req.QuoteID,
		QuotedTotalGBP: pricing.RoundMoney(quotedTotal),
		ActualTotalGBP: pricing.RoundMoney(actualTotal),
		VarianceGBP:    pricing.RoundMoney(variance),
		Notes:          req.Notes,
	}
	if quotedTotal != 0 {
		pct := pricing.RoundPct(variance / quotedTotal * 100)
		project.VariancePct = &pct
	}
	if linkedQuote != nil {
		project.QuoteSummary = quoteSummaryLabel(linkedQuote)
		project.QuoteBreakdownJSON = linkedQuote.BreakdownJSON
	}

	if err := s.projectRepo.SaveProject(project, rows); err != nil {
		return nil, err
	}
	project.CostRows = rows

	logger.Info("Recorded completed project", map[string]interface{}{
		"project_id":   project.ID,
		"quoted_total": project.QuotedTotalGBP,
		"actual_total": project.ActualTotalGBP,
		"variance":     project.VarianceGBP,
	})
	return project, nil
}

func (s *projectService) ListProjects(limit int) ([]model.CompletedProject, error) {
	return s.projectRepo.ListProjects(limit)
}

func (s *projectService) GetProjectByID(id uint) (*model.CompletedProject, error) {
	project, err := s.projectRepo.FindProjectByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// PrefillCostRows returns the editable starting rows for a quote, one per
// breakdown stage, with actual costs initialised to the quoted costs.
func (s *projectService) PrefillCostRows(quoteID uint) ([]ProjectCostRowRequest, error) {
	quote, err := s.quoteRepo.FindCommissionQuoteByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: id %d", ErrQuoteNotFound, quoteID)
	}
	return prefillFromQuote(quote), nil
}

func prefillFromQuote(quote *model.CommissionQuote) []ProjectCostRowRequest {
	var breakdown map[string]interface{}
	if err := json.Unmarshal([]byte(quote.BreakdownJSON), &breakdown); err != nil {
		breakdown = nil
	}

	rows := make([]ProjectCostRowRequest, 0, len(costRowPrefill))
	for _, entry := range costRowPrefill {
		value, ok := breakdown[entry.field].(float64)
		if !ok {
			continue
		}
		rows = append(rows, ProjectCostRowRequest{
			Category:      entry.category,
			QuotedCostGBP: value,
			ActualCostGBP: value,
		})
	}

	if len(rows) == 0 {
		rows = append(rows, ProjectCostRowRequest{
			Category:      "Total",
			QuotedCostGBP: quote.FinalPriceGBP,
			ActualCostGBP: quote.FinalPriceGBP,
		})
	}
	return rows
}

func buildCostRows(requests []ProjectCostRowRequest) ([]model.ProjectCostRow, float64, float64, error) {
	rows := make([]model.ProjectCostRow, 0, len(requests))
	var quotedTotal, actualTotal float64
	for _, request := range requests {
		category := strings.TrimSpace(request.Category)
		if category == "" {
			continue
		}
		if request.QuotedCostGBP < 0 || request.ActualCostGBP < 0 {
			return nil, 0, 0, fmt.Errorf("%w: cost row %q has a negative amount", ErrInvalidProject, category)
		}
		rows = append(rows, model.ProjectCostRow{
			Category:      category,
			QuotedCostGBP: pricing.RoundMoney(request.QuotedCostGBP),
			ActualCostGBP: pricing.RoundMoney(request.ActualCostGBP),
			VarianceGBP:   pricing.RoundMoney(request.ActualCostGBP - request.QuotedCostGBP),
		})
		quotedTotal += request.QuotedCostGBP
		actualTotal += request.ActualCostGBP
	}
	return rows, quotedTotal, actualTotal, nil
}

func quoteSummaryLabel(quote *model.CommissionQuote) string {
	quoteType := string(quote.QuoteType)
	if quoteType == "" {
		quoteType = string(model.QuoteTypeQuote)
	}
	quoteType = strings.ToUpper(quoteType[:1]) + quoteType[1:]

	customer := quote.CustomerName
	if customer == "" {
		customer = "No customer"
	}

	return fmt.Sprintf("#%d | %s | %s | %s | £%.2f",
		quote.ID,
		quote.CreatedAt.UTC().Format("2006-01-02"),
		quoteType,
		customer,
		quote.FinalPriceGBP,
	)
}
