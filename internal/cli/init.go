package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipwise/pipwise/pkg/project"
	"github.com/pipwise/pipwise/pkg/recommend"
)

// initCommand creates the init command: the full project setup flow.
func (c *CLI) initCommand() *cobra.Command {
	var (
		packagesStr string
		description string
		yes         bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a project and install a reconciled package list",
		Long: `Create a project folder with a uv virtual environment, gather package
recommendations, and install the final list.

The recommendation combines three signals: the packages you request
(--packages), packages popular in repositories similar to your project
description (--description), and model suggestions. Suggested changes are
shown for review before anything is installed; every suggestion starts
rejected. Use --yes to accept all suggestions without review.

The installed packages are written to requirements.txt in the project.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packages := recommend.SplitPackages(packagesStr)
			if len(packages) == 0 && description == "" {
				return fmt.Errorf("nothing to do: pass --packages, --description, or both")
			}
			return c.runInit(cmd.Context(), args[0], packages, description, yes, noCache)
		},
	}

	cmd.Flags().StringVarP(&packagesStr, "packages", "p", "", "packages to install (comma-separated)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "short project description used to find similar repositories")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept all suggestions without review")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInit drives the full flow: workspace, recommendation, review,
// resolve, install, requirements.txt.
func (c *CLI) runInit(ctx context.Context, name string, packages []string, description string, yes, noCache bool) error {
	ws, err := project.Setup(ctx, name)
	if err != nil {
		return fmt.Errorf("set up project: %w", err)
	}
	printSuccess("Project ready at %s", ws.Dir)

	agg, err := c.newAggregator(noCache)
	if err != nil {
		return fmt.Errorf("initialize recommender: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Gathering recommendations...")
	spinner.Start()
	rec := agg.Recommend(ctx, packages, description)
	spinner.Stop()

	printStats(len(rec.Approved), len(rec.Alternatives), len(rec.Additional), rec.Degraded)

	var decisions recommend.Decisions
	if yes {
		decisions = make(recommend.Decisions)
		for _, name := range rec.Suggested() {
			decisions[name] = true
		}
	} else {
		decisions, err = runDecisionTUI(rec)
		if err != nil {
			return err
		}
		if decisions == nil {
			printInfo("Aborted, nothing installed")
			return nil
		}
	}

	final := recommend.Resolve(rec, decisions)
	if len(final) == 0 {
		printInfo("No packages to install")
		return nil
	}
	printInfo("Installing %d packages", len(final))

	prog := newProgress(c.Logger)
	spinner = newSpinnerWithContext(ctx, "Installing packages...")
	spinner.Start()
	report := ws.Install(ctx, final)
	spinner.Stop()
	prog.done(fmt.Sprintf("Installed %d of %d packages", len(final)-len(report.Failed()), len(final)))

	for _, res := range report.Results {
		if res.OK {
			printSuccess("%s", res.Name)
		} else {
			printError("%s: %s", res.Name, res.Error)
		}
	}

	if err := ws.WriteRequirements(report); err != nil {
		return err
	}
	printFile(ws.Dir + "/requirements.txt")

	if failed := report.Failed(); len(failed) > 0 {
		printWarning("%d packages failed to install", len(failed))
	}
	printNextStep("Activate the environment", "source "+name+"/.venv/bin/activate")
	return nil
}
