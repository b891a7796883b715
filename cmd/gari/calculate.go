package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/cli"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/engine"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/export"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/rates"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/scraper"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the full landed cost of importing a car",
		Long: `Calculate the complete cost of importing a car into Kenya.

The breakdown covers CIF value, import duty, excise duty (bracketed by
engine size), VAT, IDF, railway levy and fixed clearing fees, then
compares the landed total against an estimated local market price.

Examples:
  # Fully manual entry
  gari calculate --make Toyota --model Harrier --year 2019 --engine 2.0 \
    --fob 15000 --freight 1200 --insurance 300

  # Prefill from a listing URL, estimate the FOB value from make and age
  gari calculate --url https://example.com/listing/123 --estimate-fob

  # Save to history and export a summary CSV
  gari calculate --make Mazda --model Demio --year 2020 --engine 1.3 \
    --fob 8000 --freight 1100 --insurance 200 --save --output summary.csv`,
		RunE: runCalculate,
	}

	cmd.Flags().String("make", "", "vehicle make, e.g. Toyota")
	cmd.Flags().String("model", "", "vehicle model, e.g. Harrier")
	cmd.Flags().Int("year", 0, "year of manufacture")
	cmd.Flags().String("engine", "", "engine size in liters, e.g. 2.0")
	cmd.Flags().String("fob", "", "FOB value in USD")
	cmd.Flags().String("freight", "", "freight cost in USD")
	cmd.Flags().String("insurance", "", "insurance cost in USD")
	cmd.Flags().Bool("estimate-fob", false, "estimate the FOB value from make and age when not given")
	cmd.Flags().String("url", "", "listing URL to prefill vehicle details from")
	cmd.Flags().String("local-price", "", "known local market price in KES (estimated when omitted)")
	cmd.Flags().Bool("save", false, "save the calculation to history")
	cmd.Flags().StringP("output", "o", "", "write a summary CSV to this path")

	return cmd
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	input := model.VehicleInput{
		Make:  cmd.Flag("make").Value.String(),
		Model: cmd.Flag("model").Value.String(),
	}
	input.Year, _ = cmd.Flags().GetInt("year")

	var err error
	if input.EngineSizeLiters, err = parseDecimalFlag("engine", cmd.Flag("engine").Value.String()); err != nil {
		return err
	}
	if input.FOBValueUSD, err = parseDecimalFlag("fob", cmd.Flag("fob").Value.String()); err != nil {
		return err
	}
	if input.FreightUSD, err = parseDecimalFlag("freight", cmd.Flag("freight").Value.String()); err != nil {
		return err
	}
	if input.InsuranceUSD, err = parseDecimalFlag("insurance", cmd.Flag("insurance").Value.String()); err != nil {
		return err
	}

	// Best-effort listing scrape. Failures degrade to manual entry.
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		client := scraper.NewClient()
		scraped, scrapeErr := client.Scrape(ctx, url)
		if scrapeErr != nil {
			common.LogWarn(scrapeErr, "Could not extract details from listing, continuing with manual input", common.Fields{
				"url": url,
			})
			fmt.Println(cli.FormatWarning("Could not read the listing; fill in the details manually."))
		} else {
			scraped.ApplyTo(&input)
			slog.Info("Prefilled vehicle details from listing",
				"make", scraped.Make,
				"model", scraped.Model,
				"year", scraped.Year)
		}
	}

	if estimate, _ := cmd.Flags().GetBool("estimate-fob"); estimate && !input.FOBValueUSD.IsPositive() {
		input.FOBValueUSD = engine.EstimateFOBValue(input.Make, input.Year)
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Estimated FOB value: %s", cli.FormatUSD(input.FOBValueUSD))))
	}

	table, err := rates.Load()
	if err != nil {
		return err
	}

	breakdown, err := engine.Compute(input, table)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderBreakdown(input, breakdown))

	rawLocal, _ := cmd.Flags().GetString("local-price")
	localPrice, err := parseDecimalFlag("local-price", rawLocal)
	if err != nil {
		return err
	}
	comparison := engine.CompareWithLocalMarket(breakdown.TotalKES, localPrice)
	fmt.Println(cli.RenderComparison(comparison))

	record := model.CalculationRecord{
		CreatedAt: time.Now(),
		Input:     input,
		Breakdown: breakdown,
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		store, storeErr := initStorage(ctx)
		if storeErr != nil {
			return fmt.Errorf("failed to initialize storage: %w", storeErr)
		}
		defer func() { _ = store.Close() }()

		if saveErr := store.SaveCalculation(ctx, &record); saveErr != nil {
			if errors.Is(saveErr, common.ErrDuplicateEntry) {
				fmt.Println(cli.FormatWarning("An identical calculation is already in your history."))
			} else {
				return fmt.Errorf("failed to save calculation: %w", saveErr)
			}
		} else {
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved to history as #%d", record.ID)))
		}
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if writeErr := export.WriteSummaryFile(output, record); writeErr != nil {
			return fmt.Errorf("failed to write summary: %w", writeErr)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Summary written to %s", output)))
	}

	return nil
}
