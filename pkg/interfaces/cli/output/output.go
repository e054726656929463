package output

import (
	"encoding/json"
	"fmt"
	"io"

	"bakehouse/pkg/application/dto"
	"bakehouse/pkg/application/services"
)

// Config holds configuration for output generation.
type Config struct {
	Format            string
	CostPrecision     int32
	QuantityPrecision int32
	Writer            io.Writer
}

// WritePlan renders a plan result in the configured format.
func WritePlan(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text", "":
		return writePlanText(result, config)
	case "json":
		return writeJSON(result, config.Writer)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteRecipeCost renders a recipe costing result in the configured format.
func WriteRecipeCost(cost *dto.RecipeCost, config Config) error {
	switch config.Format {
	case "text", "":
		return writeRecipeCostText(cost, config)
	case "json":
		return writeJSON(cost, config.Writer)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writePlanText(result *dto.PlanResult, config Config) error {
	w := config.Writer

	fmt.Fprintf(w, "Plan: %s\n", result.EventName)
	fmt.Fprintf(w, "=====%s\n\n", underline(len(result.EventName)+1))

	fmt.Fprintf(w, "Requirements (%d atomic units):\n", len(result.Aggregated))
	fmt.Fprintf(w, "%-20s %-12s\n", "Atomic Unit", "Quantity")
	fmt.Fprintf(w, "%-20s %-12s\n", "--------------------", "------------")
	for _, unitID := range services.SortedUnitIDs(result.Aggregated) {
		fmt.Fprintf(w, "%-20s %-12s\n",
			unitID,
			result.Aggregated[unitID].StringFixed(config.QuantityPrecision))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Batch Options:\n")
	fmt.Fprintf(w, "%-20s %-8s %-12s %-12s %-10s\n",
		"Atomic Unit", "Batches", "Yield", "Difference", "Note")
	fmt.Fprintf(w, "%-20s %-8s %-12s %-12s %-10s\n",
		"--------------------", "--------", "------------", "------------", "----------")
	for _, unitResult := range result.Options {
		for _, option := range unitResult.Options {
			note := ""
			switch {
			case option.IsExactMatch:
				note = "exact"
			case option.IsShortfall:
				note = "short"
			}
			difference := option.Difference.StringFixed(config.QuantityPrecision)
			if option.Difference.Sign() >= 0 {
				difference = "+" + difference
			}
			fmt.Fprintf(w, "%-20s %-8d %-12s %-12s %-10s\n",
				unitResult.AtomicUnitID,
				option.Batches,
				option.TotalYield.StringFixed(config.QuantityPrecision),
				difference,
				note)
		}
	}
	fmt.Fprintln(w)

	return nil
}

func writeRecipeCostText(cost *dto.RecipeCost, config Config) error {
	w := config.Writer

	fmt.Fprintf(w, "Recipe Cost: %s\n", cost.RecipeName)
	fmt.Fprintf(w, "============%s\n\n", underline(len(cost.RecipeName)+1))

	fmt.Fprintf(w, "%-16s %-12s %-6s %-12s %-12s %-12s %-12s\n",
		"Ingredient", "Requested", "Unit", "Shortfall", "Stock Cost", "Buy Cost", "Total")
	fmt.Fprintf(w, "%-16s %-12s %-6s %-12s %-12s %-12s %-12s\n",
		"----------------", "------------", "------", "------------", "------------", "------------", "------------")
	for _, line := range cost.Lines {
		fmt.Fprintf(w, "%-16s %-12s %-6s %-12s %-12s %-12s %-12s\n",
			line.IngredientID,
			line.Requested.StringFixed(config.QuantityPrecision),
			line.Unit,
			line.Shortfall.StringFixed(config.QuantityPrecision),
			line.FIFOCost.StringFixed(config.CostPrecision),
			line.ShortfallCost.StringFixed(config.CostPrecision),
			line.TotalCost.StringFixed(config.CostPrecision))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Stock cost: %s\n", cost.FIFOCost.StringFixed(config.CostPrecision))
	fmt.Fprintf(w, "Buy cost:   %s\n", cost.ShortfallCost.StringFixed(config.CostPrecision))
	fmt.Fprintf(w, "Total:      %s\n", cost.TotalCost.StringFixed(config.CostPrecision))

	return nil
}

func writeJSON(value any, w io.Writer) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func underline(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = '='
	}
	return string(out)
}
