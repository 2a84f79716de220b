package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/undraft-sh/undraft/pkg/config"
	"github.com/undraft-sh/undraft/pkg/monitor"
	"github.com/undraft-sh/undraft/pkg/platform"
	"github.com/undraft-sh/undraft/pkg/platform/api"
	"github.com/undraft-sh/undraft/pkg/platform/ghcli"
)

func newRootCmd() *cobra.Command {
	var (
		flagInterval string
		flagBackend  string
	)

	cmd := &cobra.Command{
		Use:   "undraft [PR_NUMBER] [REPO]",
		Short: "Wait for a pull request's checks to pass, then mark it ready for review",
		Long: `undraft polls a pull request's verification checks at a fixed interval
and marks the pull request ready for review once every check passes.

The pull request and repository are auto-detected from the current branch
and working directory when not given. Failed checks do not abort the run:
the monitor keeps watching so fixed-and-rerun jobs are picked up.

Examples:
  undraft                        # watch the current branch's PR
  undraft 123                    # watch PR 123 in the current repository
  undraft 123 octo/widgets       # watch PR 123 in octo/widgets
  undraft 123 --interval 10      # poll every 10 seconds`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				return fmt.Errorf("too many arguments")
			}
			return nil
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromCurrentDir()
			if err != nil {
				return err
			}

			parsed, err := strconv.Atoi(flagInterval)
			if err != nil {
				return fmt.Errorf("interval must be a positive integer (seconds), got %q", flagInterval)
			}
			interval := cfg.ResolveInterval(parsed, cmd.Flags().Changed("interval"))
			if interval <= 0 {
				return fmt.Errorf("interval must be a positive integer (seconds), got %d", interval)
			}

			// Argument handling is done; runtime failures should not
			// re-print usage.
			cmd.SilenceUsage = true

			capability, err := platform.Detect(platform.Backend(cfg.ResolveBackend(flagBackend)))
			if err != nil {
				return err
			}
			client, err := newClient(capability)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "using %s backend (%s)\n", client.Name(), capability.Rationale)

			var prArg, repoArg string
			if len(args) > 0 {
				prArg = args[0]
			}
			if len(args) > 1 {
				repoArg = args[1]
			}

			ctx := cmd.Context()
			ref, err := monitor.Resolve(ctx, client, prArg, repoArg, cfg.Repo, out)
			if err != nil {
				return err
			}

			if err := monitor.Validate(ctx, client, ref, out); err != nil {
				return err
			}

			fmt.Fprintf(out, "polling checks for %s every %ds\n", ref, interval)
			m := monitor.New(client, time.Duration(interval)*time.Second, out)
			return m.Run(ctx, ref)
		},
	}

	cmd.Flags().StringVar(&flagInterval, "interval", strconv.Itoa(config.DefaultInterval), "poll interval in seconds")
	cmd.Flags().StringVar(&flagBackend, "backend", "", "platform backend to use (gh or api); detected when empty")

	return cmd
}

// newClient constructs the platform client for the detected capability.
func newClient(capability *platform.Capability) (platform.Client, error) {
	switch capability.Backend {
	case platform.BackendGH:
		return ghcli.NewWithPath(capability.GHPath), nil
	case platform.BackendAPI:
		var opts []api.ClientOption
		if base := os.Getenv("GITHUB_API_URL"); base != "" {
			opts = append(opts, api.WithBaseURL(base))
		}
		return api.New(capability.Token, opts...), nil
	}
	return nil, fmt.Errorf("unknown backend %q", capability.Backend)
}
