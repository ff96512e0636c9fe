package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipwise/pipwise/pkg/integrations/github"
	"github.com/pipwise/pipwise/pkg/recommend"
)

// mineCommand creates the mine command: show the raw popularity ranking
// for a project description.
func (c *CLI) mineCommand() *cobra.Command {
	var (
		maxRepos int
		topN     int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "mine <description>",
		Short: "Rank packages popular in similar repositories",
		Long: `Search GitHub for Python repositories matching a description, read their
dependency manifests, and rank packages by how many repositories declare
them. This is the popularity signal feeding the recommend command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMine(cmd.Context(), args[0], maxRepos, topN, noCache)
		},
	}

	cmd.Flags().IntVar(&maxRepos, "repos", 5, "how many similar repositories to mine")
	cmd.Flags().IntVarP(&topN, "top", "n", 15, "how many packages to show")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runMine(ctx context.Context, description string, maxRepos, topN int, noCache bool) error {
	backend, err := newCache(noCache, c.Config.RedisURL)
	if err != nil {
		return err
	}

	gh := github.NewClient(c.Config.GitHubToken, backend, defaultCacheTTL)

	spinner := newSpinnerWithContext(ctx, "Searching similar repositories...")
	spinner.Start()
	repos, err := repoSearcher{gh}.SearchRepositories(ctx, description, "python", maxRepos)
	if err != nil {
		spinner.StopWithError("Search failed")
		return fmt.Errorf("search repositories: %w", err)
	}
	spinner.Stop()

	if len(repos) == 0 {
		printInfo("No similar repositories found")
		return nil
	}
	printInfo("Mining %d repositories", len(repos))
	for _, r := range repos {
		printDetail("%s (%d stars)", r.FullName, r.Stars)
	}

	spinner = newSpinnerWithContext(ctx, "Reading manifests...")
	spinner.Start()
	ranking := recommend.NewMiner(gh).Mine(ctx, repos, topN)
	spinner.Stop()

	if len(ranking) == 0 {
		printInfo("No dependencies found")
		return nil
	}

	printNewline()
	for _, pc := range ranking {
		printKeyValue(pc.Name, fmt.Sprintf("%d", pc.Count))
	}
	return nil
}
