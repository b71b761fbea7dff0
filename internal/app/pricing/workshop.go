package pricing

// WorkshopInput carries everything the workshop calculator needs. Zero
// attendees is a valid input meaning no bookings yet.
type WorkshopInput struct {
	Attendees              int
	GramsIncludedPerPerson float64
	WastePct               float64
	SpotGBPPerOz           float64
	TroyOzToGrams          float64
	TutorHours             float64
	LabourRateGBPPerHr     float64
	ConsumablesPerPerson   float64
	VenueCost              float64
	SupplierMarkupPct      float64
	OverheadPct            float64
	TargetProfitMarginPct  float64
	VATEnabled             bool
	VATRatePct             float64
}

// WorkshopBreakdown is the itemized output of a workshop pricing run
type WorkshopBreakdown struct {
	TotalGrams            float64 `json:"total_grams"`
	SpotGBPPerGram        float64 `json:"spot_gbp_per_gram"`
	MetalCostGBP          float64 `json:"metal_cost_gbp"`
	SupplierMarkupPct     float64 `json:"supplier_markup_pct"`
	SupplierMarkupCostGBP float64 `json:"supplier_markup_cost_gbp"`
	TutorCostGBP          float64 `json:"tutor_cost_gbp"`
	ConsumablesTotalGBP   float64 `json:"consumables_total_gbp"`
	VenueCostGBP          float64 `json:"venue_cost_gbp"`
	BaseSubtotalGBP       float64 `json:"base_subtotal_gbp"`
	OverheadCostGBP       float64 `json:"overhead_cost_gbp"`
	ProfitCostGBP         float64 `json:"profit_cost_gbp"`
	SubtotalBeforeVATGBP  float64 `json:"subtotal_before_vat_gbp"`
	VATAmountGBP          float64 `json:"vat_amount_gbp"`
	FinalTotalGBP         float64 `json:"final_total_gbp"`
	PerPersonGBP          float64 `json:"per_person_gbp"`
}

// CalculateWorkshop prices a group workshop with the same sequential
// percentage compounding as the commission calculator. The supplier markup
// applies only to metal and consumables, never to tutor time or the venue.
func CalculateWorkshop(in WorkshopInput) WorkshopBreakdown {
	totalGrams := float64(in.Attendees) * in.GramsIncludedPerPerson

	var spotPerGram float64
	if in.TroyOzToGrams > 0 {
		spotPerGram = in.SpotGBPPerOz / in.TroyOzToGrams
	}

	metalBase := totalGrams * spotPerGram
	metalCost := metalBase * (1 + in.WastePct/100)
	tutorCost := in.TutorHours * in.LabourRateGBPPerHr
	consumablesTotal := float64(in.Attendees) * in.ConsumablesPerPerson
	supplierMarkupCost := (metalCost + consumablesTotal) * in.SupplierMarkupPct / 100

	baseSubtotal := metalCost + consumablesTotal + supplierMarkupCost + tutorCost + in.VenueCost
	overheadCost := baseSubtotal * in.OverheadPct / 100
	subtotalPlusOverhead := baseSubtotal + overheadCost
	profitCost := subtotalPlusOverhead * in.TargetProfitMarginPct / 100
	subtotalBeforeVAT := subtotalPlusOverhead + profitCost

	vatAmount := 0.0
	if in.VATEnabled {
		vatAmount = subtotalBeforeVAT * in.VATRatePct / 100
	}
	finalTotal := subtotalBeforeVAT + vatAmount

	// Zero attendees must not divide; per-person is defined as zero.
	perPerson := 0.0
	if in.Attendees > 0 {
		perPerson = finalTotal / float64(in.Attendees)
	}

	return WorkshopBreakdown{
		TotalGrams:            RoundMoney(totalGrams),
		SpotGBPPerGram:        RoundMoney(spotPerGram),
		MetalCostGBP:          RoundMoney(metalCost),
		SupplierMarkupPct:     RoundPct(in.SupplierMarkupPct),
		SupplierMarkupCostGBP: RoundMoney(supplierMarkupCost),
		TutorCostGBP:          RoundMoney(tutorCost),
		ConsumablesTotalGBP:   RoundMoney(consumablesTotal),
		VenueCostGBP:          RoundMoney(in.VenueCost),
		BaseSubtotalGBP:       RoundMoney(baseSubtotal),
		OverheadCostGBP:       RoundMoney(overheadCost),
		ProfitCostGBP:         RoundMoney(profitCost),
		SubtotalBeforeVATGBP:  RoundMoney(subtotalBeforeVAT),
		VATAmountGBP:          RoundMoney(vatAmount),
		FinalTotalGBP:         RoundMoney(finalTotal),
		PerPersonGBP:          RoundMoney(perPerson),
	}
}
