package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipwise/pipwise/pkg/recommend"
)

// recommendCommand creates the recommend command: show the reconciled
// recommendation without installing anything.
func (c *CLI) recommendCommand() *cobra.Command {
	var (
		packagesStr string
		description string
		asJSON      bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show package recommendations without installing",
		Long: `Show the reconciled recommendation for a set of packages and a project
description: approved packages, suggested alternatives, and additional
suggestions, each with a short description from PyPI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			packages := recommend.SplitPackages(packagesStr)
			if len(packages) == 0 && description == "" {
				return fmt.Errorf("nothing to do: pass --packages, --description, or both")
			}
			return c.runRecommend(cmd.Context(), packages, description, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&packagesStr, "packages", "p", "", "packages to evaluate (comma-separated)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "short project description used to find similar repositories")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the recommendation as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRecommend(ctx context.Context, packages []string, description string, asJSON, noCache bool) error {
	agg, err := c.newAggregator(noCache)
	if err != nil {
		return fmt.Errorf("initialize recommender: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Gathering recommendations...")
	spinner.Start()
	rec := agg.Recommend(ctx, packages, description)
	spinner.Stop()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	printStats(len(rec.Approved), len(rec.Alternatives), len(rec.Additional), rec.Degraded)
	printNewline()

	if len(rec.Approved) > 0 {
		printInfo("Approved")
		for _, name := range rec.Approved {
			printDetail("%s", name)
		}
	}
	for _, alt := range rec.Alternatives {
		printInfo("%s %s %s", alt.Original, iconArrow, StyleHighlight.Render(alt.Suggested))
		printDetail("%s", alt.Reason)
		printDetail("%s", alt.Description)
	}
	for _, add := range rec.Additional {
		printInfo("+ %s", StyleHighlight.Render(add.Name))
		printDetail("%s", add.Reason)
		printDetail("%s", add.Description)
	}

	printNewline()
	printNextStep("Install these packages", "pipwise init <project> -p ... -d ...")
	return nil
}
