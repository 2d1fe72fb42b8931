package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HarshMaht02004/wacc-backend/internal/client"
	"github.com/HarshMaht02004/wacc-backend/internal/format"
	"github.com/HarshMaht02004/wacc-backend/internal/wacc"
	"github.com/HarshMaht02004/wacc-backend/pkg/config"
	"github.com/HarshMaht02004/wacc-backend/pkg/logger"
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute WACC once from flags",
	Long: `Compute WACC from the command line.

Amounts are in crore, rates in percent. Provide either --re or the
full CAPM triple (--rf, --beta, --mrp).

Examples:
  go run ./cmd/waccd calc --equity 200 --debt 50 --re 12 --rd 5 --tax 25
  go run ./cmd/waccd calc --equity 200 --debt 50 --rf 4 --beta 1.2 --mrp 6 --rd 5 --tax 25
  go run ./cmd/waccd calc --equity 200 --debt 50 --re 12 --rd 5 --tax 25 --remote`,
	RunE: runCalc,
}

var (
	calcEquity string
	calcDebt   string
	calcRe     string
	calcRf     string
	calcBeta   string
	calcMrp    string
	calcRd     string
	calcTax    string
	calcRemote bool
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVar(&calcEquity, "equity", "", "equity value in crore")
	calcCmd.Flags().StringVar(&calcDebt, "debt", "", "debt value in crore")
	calcCmd.Flags().StringVar(&calcRe, "re", "", "cost of equity in percent")
	calcCmd.Flags().StringVar(&calcRf, "rf", "", "risk-free rate in percent (CAPM)")
	calcCmd.Flags().StringVar(&calcBeta, "beta", "", "beta (CAPM)")
	calcCmd.Flags().StringVar(&calcMrp, "mrp", "", "market risk premium in percent (CAPM)")
	calcCmd.Flags().StringVar(&calcRd, "rd", "", "cost of debt in percent")
	calcCmd.Flags().StringVar(&calcTax, "tax", "", "tax rate in percent")
	calcCmd.Flags().BoolVar(&calcRemote, "remote", false, "delegate to the configured calculator API")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	in, err := wacc.ParseForm(wacc.FormInput{
		EquityValue:       calcEquity,
		DebtValue:         calcDebt,
		CostOfEquity:      calcRe,
		RiskFreeRate:      calcRf,
		Beta:              calcBeta,
		MarketRiskPremium: calcMrp,
		CostOfDebt:        calcRd,
		TaxRate:           calcTax,
	}, cfg.Display.CurrencyScale)
	if err != nil {
		return err
	}

	var result wacc.Result
	if calcRemote {
		c := client.New(cfg.Calculator, log)
		result, err = c.Compute(context.Background(), in)
	} else {
		result, err = wacc.Compute(in)
	}
	if err != nil {
		return err
	}

	printResult(format.New(cfg.Display), in, result)
	return nil
}

// printResult prints the full breakdown so the caller never has to
// recompute intermediate values.
func printResult(f *format.Formatter, in wacc.Input, res wacc.Result) {
	total := in.EquityValue + in.DebtValue

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Println("  WACC Breakdown")
	fmt.Println("───────────────────────────────────────────────")
	fmt.Printf("  Equity (E)          : %s  (%s)\n", f.Currency(in.EquityValue), f.Crore(in.EquityValue))
	fmt.Printf("  Debt (D)            : %s  (%s)\n", f.Currency(in.DebtValue), f.Crore(in.DebtValue))
	fmt.Printf("  Total capital (V)   : %s\n", f.Currency(total))
	fmt.Println("───────────────────────────────────────────────")
	fmt.Printf("  Weight of equity    : %s\n", f.Percent(res.WeightEquity))
	fmt.Printf("  Weight of debt      : %s\n", f.Percent(res.WeightDebt))
	fmt.Printf("  Cost of equity (Re) : %s\n", f.Percent(res.CostOfEquity))
	fmt.Printf("  Cost of debt (Rd)   : %s\n", f.Percent(res.CostOfDebt))
	fmt.Printf("  Tax rate (Tc)       : %s\n", f.Percent(res.TaxRate))
	fmt.Printf("  After-tax Rd        : %s\n", f.Percent(res.CostOfDebt*(1-res.TaxRate)))
	fmt.Println("───────────────────────────────────────────────")
	fmt.Printf("  WACC                : %s\n", f.Percent(res.WACC))
	fmt.Println("═══════════════════════════════════════════════")
}
