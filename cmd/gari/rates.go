package main

import (
	"fmt"
	"strings"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/cli"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/rates"
	"github.com/spf13/cobra"
)

func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the duty rates and fees used for calculations",
		RunE:  runRates,
	}
}

func runRates(_ *cobra.Command, _ []string) error {
	table, err := rates.Load()
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Import duty:   %s of CIF\n", cli.FormatPercent(table.ImportDutyRate))
	fmt.Fprintf(&b, "VAT:           %s of (CIF + duty + excise)\n", cli.FormatPercent(table.VATRate))
	fmt.Fprintf(&b, "IDF:           %s of (CIF + duty)\n", cli.FormatPercent(table.IDFRate))
	fmt.Fprintf(&b, "Railway levy:  %s of CIF\n", cli.FormatPercent(table.RailwayRate))
	fmt.Fprintf(&b, "Exchange rate: %s KES/USD\n", table.ExchangeRate.String())

	b.WriteString("\nExcise duty by engine size:\n")
	prev := "0"
	for _, bracket := range table.ExciseBrackets {
		if bracket.UpToLiters.IsZero() {
			fmt.Fprintf(&b, "  above %sL: %s\n", prev, cli.FormatPercent(bracket.Rate))
			continue
		}
		fmt.Fprintf(&b, "  %s - %sL: %s\n", prev, bracket.UpToLiters.String(), cli.FormatPercent(bracket.Rate))
		prev = bracket.UpToLiters.String()
	}

	b.WriteString("\nFixed service fees:\n")
	for _, fee := range table.ServiceFees {
		fmt.Fprintf(&b, "  %-30s %s\n", fee.Name, cli.FormatKES(fee.AmountKES))
	}
	fmt.Fprintf(&b, "  %-30s %s", "Total", cli.FormatKES(table.TotalServiceFeesKES()))

	fmt.Println(cli.RenderBox("Current rates", b.String()))
	return nil
}
