// Package ratios implements the credit-committee ratio engine: the
// amortizing-loan monthly payment and the LTV, LTC, DSTI and DSCR ratios.
//
// Inputs arrive under two historical naming conventions (French bank-dossier
// fields and English analysis-page fields). Both are permanent parts of the
// contract: every logical value is resolved by ordered fallback before any
// computation happens, so the math below only ever sees canonical values.
package ratios

import "math"

// DefaultAnnualRatePct is applied when no interest rate is supplied at all.
const DefaultAnnualRatePct = 3.5

// Budget carries acquisition cost components. Each component exists under
// both naming conventions; the French field wins when both are set.
type Budget struct {
	PrixAcquisition  float64 `json:"prixAcquisition,omitempty"`
	AcquisitionPrice float64 `json:"acquisitionPrice,omitempty"`
	MontantTravaux   float64 `json:"montantTravaux,omitempty"`
	WorksCost        float64 `json:"worksCost,omitempty"`
	Frais            float64 `json:"frais,omitempty"`
	Fees             float64 `json:"fees,omitempty"`
	TauxInteret      float64 `json:"tauxInteret,omitempty"`
	InterestRate     float64 `json:"interestRate,omitempty"`
}

// Revenus carries borrower income and recurring debt.
type Revenus struct {
	RevenusMensuels   float64 `json:"revenusMensuels,omitempty"`
	MonthlyIncome     float64 `json:"monthlyIncome,omitempty"`
	ChargesMensuelles float64 `json:"chargesMensuelles,omitempty"`
	ExistingDebt      float64 `json:"existingDebt,omitempty"`
}

// Bien carries the financed property's own valuation.
type Bien struct {
	ValeurEstimee  float64 `json:"valeurEstimee,omitempty"`
	EstimatedValue float64 `json:"estimatedValue,omitempty"`
}

// Garantie carries guarantee-recorded values used as LTV fallbacks.
type Garantie struct {
	ValeurBien       float64 `json:"valeurBien,omitempty"`
	PropertyValue    float64 `json:"propertyValue,omitempty"`
	CouvertureTotale float64 `json:"couvertureTotale,omitempty"`
	TotalCoverage    float64 `json:"totalCoverage,omitempty"`
}

// Params is the union of both calling conventions.
type Params struct {
	MontantPret    float64 `json:"montantPret,omitempty"`
	LoanAmount     float64 `json:"loanAmount,omitempty"`
	DureeMois      float64 `json:"dureeMois,omitempty"`
	DurationMonths float64 `json:"durationMonths,omitempty"`

	// Explicit rate overrides any budget-embedded rate.
	TauxAnnuel    *float64 `json:"tauxAnnuel,omitempty"`
	AnnualRatePct *float64 `json:"annualRatePct,omitempty"`

	LoyerMensuel float64 `json:"loyerMensuel,omitempty"`
	ExpectedRent float64 `json:"expectedRent,omitempty"`

	Budget   *Budget   `json:"budget,omitempty"`
	Revenus  *Revenus  `json:"revenus,omitempty"`
	Bien     *Bien     `json:"bien,omitempty"`
	Garantie *Garantie `json:"garantie,omitempty"`
}

// Result holds the computed payment and ratios. A nil ratio means its
// denominator was non-positive or unavailable; it is never zero-filled,
// since a zero ratio reads as a materially different fact downstream.
// CoutTotal and Cost are always identical; two call sites consume the
// total under different names.
type Result struct {
	Mensualite    float64  `json:"mensualite"`
	CoutTotal     float64  `json:"coutTotal"`
	Cost          float64  `json:"cost"`
	LTV           *float64 `json:"ltv"`
	LTC           *float64 `json:"ltc"`
	DSTI          *float64 `json:"dsti"`
	DSCR          *float64 `json:"dscr"`
	AnnualRatePct float64  `json:"annualRatePct"`
}

// ComputeMensualite returns the monthly payment for an amortizing loan:
// P*r / (1 - (1+r)^-n) with r the monthly rate. A non-positive amount or
// duration yields 0; a non-positive rate degenerates to straight-line
// division, avoiding the zero-rate singularity.
func ComputeMensualite(montant, dureeMois, annualRatePct float64) float64 {
	if !isFinite(montant) || !isFinite(dureeMois) || !isFinite(annualRatePct) {
		return 0
	}
	if montant <= 0 || dureeMois <= 0 {
		return 0
	}
	if annualRatePct <= 0 {
		return montant / dureeMois
	}
	r := annualRatePct / 100 / 12
	return montant * r / (1 - math.Pow(1+r, -dureeMois))
}

// ComputeRatios resolves the dual-named inputs to canonical values and
// derives the payment, total cost, and the four committee ratios.
func ComputeRatios(p Params) Result {
	in := resolve(p)

	mensualite := ComputeMensualite(in.loan, in.duration, in.ratePct)

	res := Result{
		Mensualite:    mensualite,
		CoutTotal:     in.totalCost,
		Cost:          in.totalCost,
		AnnualRatePct: in.ratePct,
	}

	if in.propertyValue > 0 {
		res.LTV = ptr(in.loan / in.propertyValue)
	}
	if in.totalCost > 0 {
		res.LTC = ptr(in.loan / in.totalCost)
	}
	if in.monthlyIncome > 0 {
		res.DSTI = ptr((in.existingDebt + mensualite) / in.monthlyIncome)
	}
	if mensualite > 0 && in.monthlyRent > 0 {
		res.DSCR = ptr(in.monthlyRent / mensualite)
	}
	return res
}

// resolved is the canonical input shape after dual-name resolution.
type resolved struct {
	loan          float64
	duration      float64
	ratePct       float64
	totalCost     float64
	propertyValue float64
	monthlyIncome float64
	existingDebt  float64
	monthlyRent   float64
}

func resolve(p Params) resolved {
	var in resolved
	in.loan = pick(p.MontantPret, p.LoanAmount)
	in.duration = pick(p.DureeMois, p.DurationMonths)
	in.ratePct = resolveRate(p)
	in.monthlyRent = pick(p.LoyerMensuel, p.ExpectedRent)

	if b := p.Budget; b != nil {
		in.totalCost = pick(b.PrixAcquisition, b.AcquisitionPrice) +
			pick(b.MontantTravaux, b.WorksCost) +
			pick(b.Frais, b.Fees)
	}
	if r := p.Revenus; r != nil {
		in.monthlyIncome = pick(r.RevenusMensuels, r.MonthlyIncome)
		in.existingDebt = pick(r.ChargesMensuelles, r.ExistingDebt)
	}

	// LTV denominator priority: the property's own valuation, then the
	// guarantee-recorded property value, then the guarantee's total coverage.
	if p.Bien != nil {
		in.propertyValue = pick(p.Bien.ValeurEstimee, p.Bien.EstimatedValue)
	}
	if in.propertyValue <= 0 && p.Garantie != nil {
		in.propertyValue = pick(p.Garantie.ValeurBien, p.Garantie.PropertyValue)
		if in.propertyValue <= 0 {
			in.propertyValue = pick(p.Garantie.CouvertureTotale, p.Garantie.TotalCoverage)
		}
	}
	return in
}

// resolveRate: explicit parameter > budget-embedded rate > fixed default.
func resolveRate(p Params) float64 {
	for _, r := range []*float64{p.TauxAnnuel, p.AnnualRatePct} {
		if r != nil && isFinite(*r) {
			return *r
		}
	}
	if p.Budget != nil {
		if r := pick(p.Budget.TauxInteret, p.Budget.InterestRate); r > 0 {
			return r
		}
	}
	return DefaultAnnualRatePct
}

// pick returns the first strictly positive, finite candidate, else 0.
func pick(candidates ...float64) float64 {
	for _, c := range candidates {
		if isFinite(c) && c > 0 {
			return c
		}
	}
	return 0
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func ptr(f float64) *float64 {
	return &f
}
