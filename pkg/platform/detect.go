package platform

import (
	"fmt"
	"os"
	"os/exec"
)

// Backend names a platform client implementation.
type Backend string

// Available backends.
const (
	// BackendGH shells out to the installed gh CLI.
	BackendGH Backend = "gh"
	// BackendAPI talks to the GitHub API directly using a token.
	BackendAPI Backend = "api"
)

// Token environment variables checked for the API backend, in order.
var tokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// Capability is the result of the one-time backend detection performed at
// startup. It carries everything needed to construct the chosen client.
type Capability struct {
	Backend   Backend
	GHPath    string // path to the gh executable (BackendGH)
	Token     string // API token (BackendAPI)
	Rationale string // human-readable explanation of the choice
}

// Detect performs the startup capability check and selects a backend.
// An authenticated gh CLI on PATH wins; otherwise a token in the
// environment selects the direct API backend. force pins the choice,
// failing if the named backend's capability is missing.
func Detect(force Backend) (*Capability, error) {
	ghPath, ghErr := exec.LookPath("gh")
	token := lookupToken()

	switch force {
	case BackendGH:
		if ghErr != nil {
			return nil, fmt.Errorf("backend %q requested but gh was not found on PATH", BackendGH)
		}
		return &Capability{Backend: BackendGH, GHPath: ghPath, Rationale: "gh backend forced"}, nil
	case BackendAPI:
		if token == "" {
			return nil, fmt.Errorf("backend %q requested but no token found in %v", BackendAPI, tokenEnvVars)
		}
		return &Capability{Backend: BackendAPI, Token: token, Rationale: "api backend forced"}, nil
	case "":
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: %s, %s)", force, BackendGH, BackendAPI)
	}

	if ghErr == nil {
		return &Capability{
			Backend:   BackendGH,
			GHPath:    ghPath,
			Rationale: fmt.Sprintf("gh found at %s", ghPath),
		}, nil
	}

	if token != "" {
		return &Capability{
			Backend:   BackendAPI,
			Token:     token,
			Rationale: "gh not found on PATH, token found in environment",
		}, nil
	}

	return nil, fmt.Errorf("no usable backend: install the gh CLI or set one of %v", tokenEnvVars)
}

func lookupToken() string {
	for _, name := range tokenEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
