package main

import (
	"errors"
	"fmt"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/cli"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/scraper"
	"github.com/spf13/cobra"
)

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape [url]",
		Short: "Extract vehicle details from a listing URL",
		Long: `Fetch a car listing page and extract whatever vehicle details can be
found: make, model, year, engine size and asking price.

Extraction is best effort. Listing sites vary wildly, so expect
partial results and fill in the gaps with calculate flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runScrape,
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	url := args[0]

	client := scraper.NewClient()
	scraped, err := client.Scrape(ctx, url)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println(cli.FormatWarning("Nothing recognizable on that page; enter the details manually."))
			return nil
		}
		return fmt.Errorf("scrape failed: %w", err)
	}

	fmt.Println(cli.FormatTitle("Listing details"))
	if scraped.Make != "" {
		fmt.Printf("  Make:        %s\n", scraped.Make)
	}
	if scraped.Model != "" {
		fmt.Printf("  Model:       %s\n", scraped.Model)
	}
	if scraped.Year != 0 {
		fmt.Printf("  Year:        %d\n", scraped.Year)
	}
	if scraped.EngineSizeLiters.IsPositive() {
		fmt.Printf("  Engine:      %sL\n", scraped.EngineSizeLiters.String())
	}
	if scraped.FOBValueUSD.IsPositive() {
		fmt.Printf("  Price (FOB): %s\n", cli.FormatUSD(scraped.FOBValueUSD))
	}

	fmt.Println(cli.FormatInfo("Pass --url to gari calculate to prefill these values."))
	return nil
}
