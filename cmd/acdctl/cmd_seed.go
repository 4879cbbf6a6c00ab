package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/awsugahm/acd2026-api/internal/repository"
	"github.com/awsugahm/acd2026-api/internal/seed"
	"github.com/awsugahm/acd2026-api/pkg/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in sample content into empty tables",
	Long: `Inserts the embedded speakers, sponsors, ticket tiers and FAQs.

Tables that already contain rows are skipped, so the command is safe to rerun.
The schema is applied first.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := database.EnsureSchema(ctx, e.db); err != nil {
		return err
	}
	data, err := seed.Load()
	if err != nil {
		return err
	}

	seeder := seed.NewSeeder(seed.Stores{
		Speakers: repository.NewSpeakerRepository(e.db),
		Sponsors: repository.NewSponsorRepository(e.db),
		Tickets:  repository.NewTicketRepository(e.db),
		FAQs:     repository.NewFAQRepository(e.db),
	}, e.logger)
	report, err := seeder.Run(ctx, data)
	if err != nil {
		return err
	}

	tables := make([]string, 0, len(report.Inserted))
	for table := range report.Inserted {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	out := cmd.OutOrStdout()
	for _, table := range tables {
		fmt.Fprintf(out, "%-14s %d inserted\n", table, report.Inserted[table])
	}
	for _, table := range report.Skipped {
		fmt.Fprintf(out, "%-14s skipped (not empty)\n", table)
	}
	return nil
}
