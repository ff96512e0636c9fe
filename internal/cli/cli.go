// Package cli implements the pipwise command-line interface.
//
// Commands cover the full flow: init provisions a project and installs a
// reconciled package list, recommend and mine expose the intermediate
// steps, serve runs the HTTP API, and cache manages the HTTP response
// cache. All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pipwise/pipwise/pkg/buildinfo"
	"github.com/pipwise/pipwise/pkg/cache"
	"github.com/pipwise/pipwise/pkg/integrations/github"
	"github.com/pipwise/pipwise/pkg/integrations/pypi"
	"github.com/pipwise/pipwise/pkg/llm"
	"github.com/pipwise/pipwise/pkg/recommend"
)

const (
	// appName is the application name used for directories and display.
	appName = "pipwise"

	// defaultCacheTTL is how long HTTP responses stay cached.
	defaultCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and configuration
// read from the environment.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: ConfigFromEnv(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pipwise",
		Short:        "Pipwise assembles and installs Python package lists",
		Long:         `Pipwise helps set up new Python projects: it combines the packages you ask for, packages popular in similar repositories, and model suggestions into one reconciled install list, then provisions the project with uv.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.initCommand())
	root.AddCommand(c.recommendCommand())
	root.AddCommand(c.mineCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newAggregator wires the recommendation collaborators from the current
// configuration. The model client is the only required piece.
func (c *CLI) newAggregator(noCache bool) (*recommend.Aggregator, error) {
	backend, err := newCache(noCache, c.Config.RedisURL)
	if err != nil {
		return nil, err
	}

	model, err := llm.NewClient(llm.Config{
		APIKey:  c.Config.GroqAPIKey,
		Model:   c.Config.Model,
		BaseURL: c.Config.ModelBaseURL,
	})
	if err != nil {
		return nil, err
	}

	gh := github.NewClient(c.Config.GitHubToken, backend, defaultCacheTTL)
	idx := pypi.NewClient(backend, defaultCacheTTL)

	return recommend.NewAggregator(
		repoSearcher{gh},
		recommend.NewMiner(gh),
		model,
		idx,
		c.Logger,
	), nil
}

// repoSearcher adapts the GitHub client to the miner's search interface.
type repoSearcher struct {
	gh *github.Client
}

func (s repoSearcher) SearchRepositories(ctx context.Context, query, language string, maxResults int) ([]recommend.RepoRef, error) {
	repos, err := s.gh.SearchRepositories(ctx, query, language, maxResults)
	if err != nil {
		return nil, err
	}
	refs := make([]recommend.RepoRef, len(repos))
	for i, r := range repos {
		refs[i] = recommend.RepoRef{FullName: r.FullName, Stars: r.Stars, Description: r.Description}
	}
	return refs, nil
}

// newCache picks the cache backend: disabled, Redis when configured, or
// the XDG file cache. An unreachable Redis falls back to files so the
// flow keeps working offline.
func newCache(noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	if redisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if backend, err := cache.NewRedisCache(ctx, redisURL); err == nil {
			return backend, nil
		}
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pipwise/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
