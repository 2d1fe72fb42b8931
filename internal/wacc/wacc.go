// Package wacc computes the Weighted Average Cost of Capital from
// capital-structure and rate inputs. The computation is pure and
// stateless: identical inputs always produce identical results, and
// concurrent calls are safe without coordination.
package wacc

// Input holds the computation inputs. Amounts are in base currency
// units and rates are decimal fractions (0.12, not 12%). Pointer
// fields distinguish "not provided" from an explicit zero.
type Input struct {
	EquityValue float64 `json:"equityValue"`
	DebtValue   float64 `json:"debtValue"`

	// CostOfEquity, when set, is used as-is and the CAPM fields are
	// ignored. When nil, all three CAPM fields are required.
	CostOfEquity      *float64 `json:"costOfEquity,omitempty"`
	RiskFreeRate      *float64 `json:"riskFreeRate,omitempty"`
	Beta              *float64 `json:"beta,omitempty"`
	MarketRiskPremium *float64 `json:"marketRiskPremium,omitempty"`

	CostOfDebt *float64 `json:"costOfDebt,omitempty"`
	TaxRate    *float64 `json:"taxRate,omitempty"`
}

// Result holds the resolved computation output. All rates are decimal
// fractions; multiply by 100 for percent display. Intermediate values
// are included so a rendering layer never recomputes anything.
type Result struct {
	WACC         float64 `json:"wacc"`
	CostOfEquity float64 `json:"re"`
	CostOfDebt   float64 `json:"rd"`
	TaxRate      float64 `json:"taxRate"`
	WeightEquity float64 `json:"weightE"`
	WeightDebt   float64 `json:"weightD"`
}

// Compute derives capital weights, resolves the cost of equity and
// computes WACC = wE*Re + wD*Rd*(1-Tc).
//
// Policy for E + D = 0: the weights are undefined, so Compute returns
// ErrDegenerateCapital rather than reporting 0/0.
func Compute(in Input) (Result, error) {
	if in.EquityValue < 0 {
		return Result{}, validationError("equityValue", "must be non-negative")
	}
	if in.DebtValue < 0 {
		return Result{}, validationError("debtValue", "must be non-negative")
	}

	total := in.EquityValue + in.DebtValue
	if total <= 0 {
		return Result{}, ErrDegenerateCapital
	}

	weightEquity := in.EquityValue / total
	weightDebt := in.DebtValue / total

	re, err := resolveCostOfEquity(in)
	if err != nil {
		return Result{}, err
	}

	if in.CostOfDebt == nil {
		return Result{}, missingInputsError("cost of debt is required")
	}
	rd := *in.CostOfDebt

	if in.TaxRate == nil {
		return Result{}, missingInputsError("tax rate is required")
	}
	tc := *in.TaxRate
	if tc < 0 || tc > 1 {
		return Result{}, validationError("taxRate", "must be between 0 and 1")
	}

	return Result{
		WACC:         weightEquity*re + weightDebt*rd*(1-tc),
		CostOfEquity: re,
		CostOfDebt:   rd,
		TaxRate:      tc,
		WeightEquity: weightEquity,
		WeightDebt:   weightDebt,
	}, nil
}

// resolveCostOfEquity applies the single resolution rule: an explicit
// Re always wins; otherwise CAPM (Re = Rf + beta * MRP) requires the
// full triple.
func resolveCostOfEquity(in Input) (float64, error) {
	if in.CostOfEquity != nil {
		return *in.CostOfEquity, nil
	}

	if in.RiskFreeRate == nil || in.Beta == nil || in.MarketRiskPremium == nil {
		return 0, missingInputsError("missing cost of equity inputs: provide costOfEquity or all of riskFreeRate, beta, marketRiskPremium")
	}

	return *in.RiskFreeRate + *in.Beta*(*in.MarketRiskPremium), nil
}
