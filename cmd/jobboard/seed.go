package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/server"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty job catalog",
	Long: `Insert job postings when the catalog is empty. Without --file the built-in
catalog is used. The file must be a JSON array of postings matching the catalog schema.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to a JSON job catalog")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cmd.Context(), cfg, storePostgres)
	if err != nil {
		return err
	}
	defer closeStore()

	var n int
	if seedFile == "" {
		n, err = seedDefaultCatalog(cmd.Context(), store)
	} else {
		n, err = seedFromFile(cmd, store, seedFile)
	}
	if err != nil {
		return err
	}

	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog already has postings, nothing seeded")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d job postings\n", n)
	return nil
}

func seedFromFile(cmd *cobra.Command, store server.JobStore, path string) (int, error) {
	jobs, err := schemas.LoadCatalogFile(path)
	if err != nil {
		return 0, err
	}
	n, err := server.NewJobService(store).Seed(cmd.Context(), jobs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog from %s: %w", path, err)
	}
	return n, nil
}
