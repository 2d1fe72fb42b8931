package wacc

import (
	"math"
	"strconv"
	"strings"
)

// CroreScale converts crore to base currency units.
const CroreScale = 1e7

// FormInput carries the raw form fields as submitted: amounts in
// crore, rates in percent, empty string meaning "not provided".
type FormInput struct {
	EquityValue       string `json:"equityValue"`
	DebtValue         string `json:"debtValue"`
	CostOfEquity      string `json:"costOfEquity"`
	RiskFreeRate      string `json:"riskFreeRate"`
	Beta              string `json:"beta"`
	MarketRiskPremium string `json:"marketRiskPremium"`
	CostOfDebt        string `json:"costOfDebt"`
	TaxRate           string `json:"taxRate"`
}

// ParseForm normalizes form fields into computation inputs: percent
// values are divided by 100, amounts are scaled from crore (by scale,
// normally CroreScale) to base units. Empty fields become absent, not
// zero — except equity and debt, which default to 0. Non-numeric text
// is rejected with a validation error; nothing is coerced to NaN.
func ParseForm(form FormInput, scale float64) (Input, error) {
	var in Input

	equity, err := parseAmount("equityValue", form.EquityValue, scale)
	if err != nil {
		return Input{}, err
	}
	in.EquityValue = equity

	debt, err := parseAmount("debtValue", form.DebtValue, scale)
	if err != nil {
		return Input{}, err
	}
	in.DebtValue = debt

	if in.CostOfEquity, err = parsePercent("costOfEquity", form.CostOfEquity); err != nil {
		return Input{}, err
	}
	if in.RiskFreeRate, err = parsePercent("riskFreeRate", form.RiskFreeRate); err != nil {
		return Input{}, err
	}
	if in.Beta, err = parseNumber("beta", form.Beta); err != nil {
		return Input{}, err
	}
	if in.MarketRiskPremium, err = parsePercent("marketRiskPremium", form.MarketRiskPremium); err != nil {
		return Input{}, err
	}
	if in.CostOfDebt, err = parsePercent("costOfDebt", form.CostOfDebt); err != nil {
		return Input{}, err
	}
	if in.TaxRate, err = parsePercent("taxRate", form.TaxRate); err != nil {
		return Input{}, err
	}

	return in, nil
}

// parseAmount parses a crore-denominated amount, defaulting to 0 when
// absent.
func parseAmount(field, raw string, scale float64) (float64, error) {
	v, err := parseNumber(field, raw)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, validationError(field, "must be non-negative")
	}
	return *v * scale, nil
}

// parsePercent parses a percent field into a decimal fraction.
func parsePercent(field, raw string) (*float64, error) {
	v, err := parseNumber(field, raw)
	if err != nil || v == nil {
		return nil, err
	}
	frac := *v / 100
	return &frac, nil
}

// parseNumber parses an optional numeric field. Empty or whitespace
// input maps to nil (absent).
func parseNumber(field, raw string) (*float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// ParseFloat accepts "NaN" and "Inf" literals; neither may
		// propagate into the computation.
		return nil, validationError(field, "is not a number")
	}

	return &v, nil
}
