package recommend

import (
	"fmt"
	"strings"
)

// SystemPrompt instructs the model to answer in the line grammar the
// parser understands. Deviations from the format degrade gracefully.
const SystemPrompt = `You are an expert Python developer helping choose packages for a new project.

You will receive a project description, the packages the user wants to install, and packages popular in similar projects.

Respond in EXACTLY this format:

APPROVE: <comma-separated packages from the user's list that are good choices>
SUGGEST_ALTERNATIVES:
- <original>: Better alternative is <package> because <short reason>
ADDITIONAL:
- <package>: <short reason why it fits this project>

Rules:
- Only suggest real packages published on PyPI.
- One package name per bullet, never several joined with "or" or "and".
- Omit a section's bullets if you have nothing to suggest, but keep the headers.
- Keep reasons to one sentence.`

// maxPromptRanking caps how many mined package names are embedded in the
// prompt.
const maxPromptRanking = 10

// BuildUserPrompt assembles the prompt context from the project
// description, the requested packages, and the mined popularity ranking.
// Absent inputs are stated explicitly so the model never invents them.
func BuildUserPrompt(description string, packages []string, ranking Ranking) string {
	desc := strings.TrimSpace(description)
	if desc == "" {
		desc = "Not provided"
	}

	pkgs := "None specified"
	if len(packages) > 0 {
		pkgs = strings.Join(packages, ", ")
	}

	mined := "None found"
	if len(ranking) > 0 {
		names := ranking.Names()
		if len(names) > maxPromptRanking {
			names = names[:maxPromptRanking]
		}
		mined = strings.Join(names, ", ")
	}

	return fmt.Sprintf(`Project description: %s

Requested packages: %s

Popular packages in similar projects: %s`, desc, pkgs, mined)
}
