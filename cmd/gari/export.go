package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/cli"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/export"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a saved calculation as a summary CSV",
		Long: `Export a calculation from history as a summary CSV.

Find the id with gari history. Without an id, exports the most
recent calculation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "summary.csv", "output file path")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	var record *model.CalculationRecord
	if len(args) == 1 {
		id, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			return fmt.Errorf("%w: invalid calculation id %q", common.ErrValidation, args[0])
		}
		record, err = store.GetCalculation(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("no calculation with id %d; run gari history to see saved ids", id)
			}
			return fmt.Errorf("failed to load calculation: %w", err)
		}
	} else {
		records, listErr := store.ListCalculations(ctx, 1)
		if listErr != nil {
			return fmt.Errorf("failed to load calculations: %w", listErr)
		}
		if len(records) == 0 {
			return fmt.Errorf("nothing to export; run gari calculate --save first")
		}
		record = &records[0]
	}

	if err := export.WriteSummaryFile(output, *record); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported calculation #%d to %s", record.ID, output)))
	return nil
}
