package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/cli"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/crsp"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// importBatchSize is how many CRSP rows go into each insert transaction.
const importBatchSize = 500

func crspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crsp",
		Short: "Manage the KRA CRSP reference price database",
		Long: `Manage the local copy of the KRA CRSP (Current Retail Selling Price)
reference database used for vehicle valuation lookups.`,
	}

	cmd.AddCommand(crspImportCmd())
	cmd.AddCommand(crspSearchCmd())

	return cmd
}

func crspImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a CRSP file (CSV or XLSX)",
		Long: `Import a CRSP reference price file into the local database.

Handles the messy headers and encodings the KRA exports come with:
quoted and re-quoted column names, Latin-1 CSV files, engine sizes
embedded in model strings.

Examples:
  gari crsp import crsp_2024.csv
  gari crsp import crsp_2024.xlsx --sheet "CRSP JULY"
  gari crsp import crsp_2025.csv --replace`,
		Args: cobra.ExactArgs(1),
		RunE: runCRSPImport,
	}

	cmd.Flags().String("sheet", "", "worksheet name for XLSX files (default: first sheet)")
	cmd.Flags().Bool("replace", false, "clear existing CRSP entries before importing")

	return cmd
}

func runCRSPImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	parser := crsp.NewParser()
	parser.Sheet, _ = cmd.Flags().GetString("sheet")

	entries, err := parser.ParseFile(ctx, path)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not read CRSP file %s", path), err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no usable rows in %s", common.ErrValidation, path)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if replace, _ := cmd.Flags().GetBool("replace"); replace {
		if clearErr := store.ClearCRSPEntries(ctx); clearErr != nil {
			return fmt.Errorf("failed to clear existing entries: %w", clearErr)
		}
		slog.Info("Cleared existing CRSP entries")
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing CRSP entries...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	saved := 0
	for start := 0; start < len(entries); start += importBatchSize {
		end := start + importBatchSize
		if end > len(entries) {
			end = len(entries)
		}

		n, saveErr := store.SaveCRSPEntries(ctx, entries[start:end])
		if saveErr != nil {
			return fmt.Errorf("failed to save entries: %w", saveErr)
		}
		saved += n

		if barErr := bar.Add(end - start); barErr != nil {
			slog.Warn("Failed to update progress bar", "error", barErr)
		}
	}

	total, err := store.CountCRSPEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d entries from %s (%d total in database)", saved, path, total)))
	return nil
}

func crspSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the CRSP database by make and model",
		Long: `Search the local CRSP database. Make and model are matched as
case-insensitive substrings, so "--make toy --model harr" finds
Toyota Harrier variants.`,
		RunE: runCRSPSearch,
	}

	cmd.Flags().String("make", "", "vehicle make to match")
	cmd.Flags().String("model", "", "vehicle model to match")
	cmd.Flags().Int("limit", 20, "maximum number of results")

	return cmd
}

func runCRSPSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter := service.CRSPFilter{
		Make:  cmd.Flag("make").Value.String(),
		Model: cmd.Flag("model").Value.String(),
	}
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if filter.Make == "" && filter.Model == "" {
		return fmt.Errorf("%w: provide --make or --model to search", common.ErrValidation)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.SearchCRSP(ctx, filter)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println(cli.FormatWarning("No CRSP entries matched; enter the vehicle value manually."))
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println(cli.FormatWarning("No CRSP entries matched; enter the vehicle value manually."))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("CRSP matches (%d)", len(entries))))
	for _, entry := range entries {
		fmt.Println(renderCRSPEntry(entry))
	}

	return nil
}

func renderCRSPEntry(entry model.CRSPEntry) string {
	line := fmt.Sprintf("  %s %s", entry.Make, entry.Model)
	if entry.ModelNumber != "" {
		line += fmt.Sprintf(" [%s]", entry.ModelNumber)
	}
	if entry.HasEngineSize() {
		line += fmt.Sprintf(" %sL", entry.EngineSizeLiters.String())
	}
	if entry.CRSPValueKES.IsPositive() {
		line += " - " + cli.FormatKES(entry.CRSPValueKES)
	}
	return line
}
