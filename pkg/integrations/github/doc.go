// Package github provides a client for the GitHub REST API.
//
// Two operations are supported, both serving the popularity-mining flow:
//
//   - [Client.SearchRepositories]: find repositories similar to a project
//     description, sorted by stars
//   - [Client.FetchFile]: retrieve a raw manifest file (requirements.txt,
//     pyproject.toml) from a repository's default branch
//
// Requests are cached and retried via the shared integrations client.
// An API token raises rate limits but is optional.
package github
