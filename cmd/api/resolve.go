package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travel-journal/backend/internal/journal"
	"github.com/pkordes/travel-journal/backend/internal/timeline"
)

// newResolveCmd resolves a snapshot file offline, without a database.
func newResolveCmd() *cobra.Command {
	var (
		file   string
		today  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a YAML snapshot into the itinerary read-model",
		Long: `Reads a snapshot of the six record collections (adventures, categories,
visits, activities, lodgings, transportations) and prints the resolved
read-model. Use --today to pin the date statuses are computed against.`,
		Example: "  travel-journal resolve --file snapshot.yaml --today 2024-06-03",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if today != "" {
				t, ok := timeline.ParseDate(today)
				if !ok {
					return fmt.Errorf("--today must be YYYY-MM-DD, got %q", today)
				}
				now = t
			}

			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open snapshot: %w", err)
				}
				defer f.Close()
				in = f
			}

			s, err := journal.DecodeSnapshot(in)
			if err != nil {
				return err
			}
			rm := journal.Build(s, now)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rm)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(rm); err != nil {
				return fmt.Errorf("encode read-model: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "snapshot YAML file, - for stdin")
	cmd.Flags().StringVar(&today, "today", "", "date to compute statuses against (default: local today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return cmd
}
