package pricing

// StoneItem is one stone line fed into the commission calculator. The catalog
// owns the stone; the calculator only sees the resolved cost and markup.
type StoneItem struct {
	StoneID          uint    `json:"stone_id"`
	Label            string  `json:"label"`
	Qty              int     `json:"qty"`
	UnitCostGBP      float64 `json:"unit_cost_gbp"`
	AppliedMarkupPct float64 `json:"applied_markup_pct"`
}

// CommissionInput carries everything the commission calculator needs. All
// percentages are plain numbers (5 means 5%).
type CommissionInput struct {
	WeightGrams           float64
	SpotGBPPerOz          float64
	TroyOzToGrams         float64
	MetalMultiplier       float64
	WastePct              float64
	StoneItems            []StoneItem
	LabourHours           float64
	LabourRateGBPPerHr    float64
	SupplierMarkupPct     float64
	OverheadPct           float64
	TargetProfitMarginPct float64
	VATEnabled            bool
	VATRatePct            float64
	DepositPct            float64
}

// StoneLine echoes one priced stone line in the breakdown
type StoneLine struct {
	StoneID     uint    `json:"stone_id"`
	Label       string  `json:"label"`
	Qty         int     `json:"qty"`
	UnitCostGBP float64 `json:"unit_cost_gbp"`
	MarkupPct   float64 `json:"markup_pct"`
	LineCostGBP float64 `json:"line_cost_gbp"`
}

// CommissionBreakdown is the itemized output of a commission pricing run.
// Monetary fields are rounded to 2 decimals; it is never mutated after
// construction.
type CommissionBreakdown struct {
	SpotGBPPerOz          float64     `json:"spot_gbp_per_oz"`
	SpotGBPPerGram        float64     `json:"spot_gbp_per_gram"`
	MetalBaseCostGBP      float64     `json:"metal_base_cost_gbp"`
	MetalCostGBP          float64     `json:"metal_cost_gbp"`
	StoneCostGBP          float64     `json:"stone_cost_gbp"`
	StoneLines            []StoneLine `json:"stone_lines"`
	SupplierMarkupPct     float64     `json:"supplier_markup_pct"`
	SupplierMarkupCostGBP float64     `json:"supplier_markup_cost_gbp"`
	LabourCostGBP         float64     `json:"labour_cost_gbp"`
	BaseSubtotalGBP       float64     `json:"base_subtotal_gbp"`
	OverheadCostGBP       float64     `json:"overhead_cost_gbp"`
	ProfitCostGBP         float64     `json:"profit_cost_gbp"`
	SubtotalBeforeVATGBP  float64     `json:"subtotal_before_vat_gbp"`
	VATAmountGBP          float64     `json:"vat_amount_gbp"`
	DepositPct            float64     `json:"deposit_pct"`
	DepositDueGBP         float64     `json:"deposit_due_gbp"`
	RemainingBalanceGBP   float64     `json:"remaining_balance_gbp"`
	FinalPriceGBP         float64     `json:"final_price_gbp"`
}

// CalculateCommission prices a bespoke commission. The stages compound
// sequentially: each percentage applies to the running subtotal, never to a
// fixed base. Reordering the stages changes the final price.
//
// The function is pure. Zero and stray inputs degrade numerically (zero weight
// means zero metal cost); the only explicit guard is the troy-ounce constant,
// where zero would otherwise divide by zero.
func CalculateCommission(in CommissionInput) CommissionBreakdown {
	var spotPerGram float64
	if in.TroyOzToGrams > 0 {
		spotPerGram = in.SpotGBPPerOz / in.TroyOzToGrams
	}

	metalBase := in.WeightGrams * spotPerGram * in.MetalMultiplier
	metalCost := metalBase * (1 + in.WastePct/100)

	stoneCost := 0.0
	stoneLines := make([]StoneLine, 0, len(in.StoneItems))
	for _, item := range in.StoneItems {
		lineCost := item.UnitCostGBP * float64(item.Qty) * (1 + item.AppliedMarkupPct/100)
		stoneCost += lineCost
		stoneLines = append(stoneLines, StoneLine{
			StoneID:     item.StoneID,
			Label:       item.Label,
			Qty:         item.Qty,
			UnitCostGBP: RoundMoney(item.UnitCostGBP),
			MarkupPct:   RoundPct(item.AppliedMarkupPct),
			LineCostGBP: RoundMoney(lineCost),
		})
	}

	// Labour is never marked up by the supplier percentage.
	supplierMarkupCost := (metalCost + stoneCost) * in.SupplierMarkupPct / 100
	labourCost := in.LabourHours * in.LabourRateGBPPerHr
	baseSubtotal := metalCost + stoneCost + supplierMarkupCost + labourCost

	overheadCost := baseSubtotal * in.OverheadPct / 100
	subtotalPlusOverhead := baseSubtotal + overheadCost

	profitCost := subtotalPlusOverhead * in.TargetProfitMarginPct / 100
	subtotalBeforeVAT := subtotalPlusOverhead + profitCost

	vatAmount := 0.0
	if in.VATEnabled {
		vatAmount = subtotalBeforeVAT * in.VATRatePct / 100
	}
	finalPrice := subtotalBeforeVAT + vatAmount
	depositDue := finalPrice * in.DepositPct / 100
	remainingBalance := finalPrice - depositDue

	return CommissionBreakdown{
		SpotGBPPerOz:          RoundMoney(in.SpotGBPPerOz),
		SpotGBPPerGram:        RoundMoney(spotPerGram),
		MetalBaseCostGBP:      RoundMoney(metalBase),
		MetalCostGBP:          RoundMoney(metalCost),
		StoneCostGBP:          RoundMoney(stoneCost),
		StoneLines:            stoneLines,
		SupplierMarkupPct:     RoundPct(in.SupplierMarkupPct),
		SupplierMarkupCostGBP: RoundMoney(supplierMarkupCost),
		LabourCostGBP:         RoundMoney(labourCost),
		BaseSubtotalGBP:       RoundMoney(baseSubtotal),
		OverheadCostGBP:       RoundMoney(overheadCost),
		ProfitCostGBP:         RoundMoney(profitCost),
		SubtotalBeforeVATGBP:  RoundMoney(subtotalBeforeVAT),
		VATAmountGBP:          RoundMoney(vatAmount),
		DepositPct:            RoundPct(in.DepositPct),
		DepositDueGBP:         RoundMoney(depositDue),
		RemainingBalanceGBP:   RoundMoney(remainingBalance),
		FinalPriceGBP:         RoundMoney(finalPrice),
	}
}
