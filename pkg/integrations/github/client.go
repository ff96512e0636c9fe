package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pipwise/pipwise/pkg/cache"
	"github.com/pipwise/pipwise/pkg/integrations"
)

// Client provides access to the GitHub API for repository search and
// manifest file retrieval. It handles HTTP requests with caching,
// automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests
// (lower rate limits). Responses are cached in backend for cacheTTL.
func NewClient(token string, backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(backend, "github:", cacheTTL, headers),
		baseURL: "https://api.github.com",
	}
}

// SearchRepositories searches GitHub for repositories matching the query,
// restricted to the given language and sorted by stars descending.
// The query must be non-empty; searching with a blank query is a caller bug
// and returns an error rather than a spurious result set.
func (c *Client) SearchRepositories(ctx context.Context, query, language string, maxResults int) ([]Repo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	key := fmt.Sprintf("search:%s:%s:%d", language, query, maxResults)

	var repos []Repo
	err := c.Cached(ctx, key, false, &repos, func() error {
		found, err := c.doSearch(ctx, query, language, maxResults)
		if err != nil {
			return err
		}
		repos = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) doSearch(ctx context.Context, query, language string, maxResults int) ([]Repo, error) {
	q := query
	if language != "" {
		q = fmt.Sprintf("%s language:%s", query, language)
	}
	url := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=%d",
		c.baseURL, integrations.URLEncode(q), maxResults)

	var data searchResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, err
	}

	repos := make([]Repo, 0, len(data.Items))
	for _, item := range data.Items {
		repos = append(repos, Repo{
			Name:        item.Name,
			FullName:    item.FullName,
			Description: item.Description,
			Stars:       item.Stars,
			URL:         item.HTMLURL,
		})
	}
	return repos, nil
}

// FetchFile retrieves the decoded content of a file from a repository.
// fullName is the "owner/repo" form. Returns [integrations.ErrNotFound]
// if the file does not exist on the default branch.
func (c *Client) FetchFile(ctx context.Context, fullName, path string) (string, error) {
	key := fmt.Sprintf("contents:%s:%s", fullName, path)

	var content string
	err := c.Cached(ctx, key, false, &content, func() error {
		fetched, err := c.fetchContents(ctx, fullName, path)
		if err != nil {
			return err
		}
		content = fetched
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) fetchContents(ctx context.Context, fullName, path string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, fullName, path)

	var data contentResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: %s in %s", err, path, fullName)
		}
		return "", err
	}

	// The contents API returns base64 with embedded newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(data.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode content of %s: %w", path, err)
	}
	return string(decoded), nil
}

type searchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Name        string `json:"name"`
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
		HTMLURL     string `json:"html_url"`
	} `json:"items"`
}

type contentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
