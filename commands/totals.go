package commands

import (
	"fmt"

	"optimasfibre-web/models"
	"optimasfibre-web/services"

	"github.com/spf13/cobra"
)

func newTotalsCmd() *cobra.Command {
	var tax string

	cmd := &cobra.Command{
		Use:     "totals [amount...]",
		Short:   "Compute invoice subtotal and total for the given item amounts",
		Example: "  optimas totals 59.99 10 --tax 5",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]models.LineItem, 0, len(args))
			for i, a := range args {
				items = append(items, models.LineItem{
					Description: fmt.Sprintf("item %d", i+1),
					Amount:      models.ParseAmount(a),
				})
			}
			t := services.ComputeTotals(items, models.ParseAmount(tax))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Subtotal: %s\n", t.Subtotal.StringFixed(2))
			fmt.Fprintf(out, "Tax:      %s\n", t.Tax.StringFixed(2))
			fmt.Fprintf(out, "Total:    %s\n", t.Total.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&tax, "tax", "0", "tax amount added to the subtotal")
	return cmd
}
