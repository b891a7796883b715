package main

import (
	"fmt"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/cli"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved calculations",
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", 10, "maximum number of calculations to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListCalculations(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list calculations: %w", err)
	}
	if len(records) == 0 {
		fmt.Println(cli.FormatInfo("No saved calculations yet. Run gari calculate --save to start a history."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Calculation history"))
	for _, record := range records {
		fmt.Printf("  #%-4d %s  %-30s total %s\n",
			record.ID,
			record.CreatedAt.Format("2006-01-02 15:04"),
			record.Input.Description(),
			cli.FormatKES(record.Breakdown.TotalKES))
	}

	return nil
}
