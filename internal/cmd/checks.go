package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dendrascience/toolbelt/internal/checks"
	"github.com/dendrascience/toolbelt/util"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewChecksCmd creates and returns the checks subcommand for the toolbelt CLI.
func NewChecksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List and run the built-in self-checks",
		Long: `The built-in self-checks exercise hashing, zstd, nonces, the naughty-string
fixture and the background worker. Checks are arranged in a tree of kinds;
naming a kind selects every runnable check beneath it.`,
	}

	cmd.AddCommand(newChecksListCmd())
	cmd.AddCommand(newChecksRunCmd(a))

	return cmd
}

func newChecksListCmd() *cobra.Command {
	var under string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := checks.NewRegistry()
			entries, err := r.AllSubtypes(under)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Name", "Kind", "Runnable", "Description")
			for _, e := range entries {
				table.Append([]string{
					e.Name(),
					e.Parent(),
					strconv.FormatBool(!e.Value().Abstract()),
					e.Value().Description,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&under, "under", checks.Root, "Only list checks beneath this kind")

	return cmd
}

func newChecksRunCmd(a *app) *cobra.Command {
	var (
		retry       util.YesNoOnce
		maxAttempts int
		parallel    int
	)

	cmd := &cobra.Command{
		Use:   "run [NAME...]",
		Short: "Run checks by name, or all of them",
		Long: `Run the named checks, or every runnable check when no NAME is given.

Each attempt runs on its own background worker in a fresh scratch directory
and is bounded by --join-timeout. --retry decides what happens after a
failure: no gives up, once tries one more time and yes keeps trying up to
--max-attempts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := checks.NewRegistry()
			entries, err := checks.Select(r, args)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"checks":   len(entries),
				"retry":    retry.String(),
				"parallel": parallel,
			}).Debug("running checks")

			results := checks.Run(cmd.Context(), entries, checks.Options{
				Timeout:     a.cfg.JoinTimeout,
				Retry:       retry,
				MaxAttempts: maxAttempts,
				Parallel:    parallel,
				Fixtures:    a.fixtures(),
			})
			return reportResults(cmd, a, results)
		},
	}

	cmd.Flags().Var(&retry, "retry", "Retry failing checks: yes, no or once")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "Attempt ceiling for --retry=yes")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Number of checks to run at once")

	return cmd
}

func reportResults(cmd *cobra.Command, a *app, results []checks.Result) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Check", "Status", "Attempts", "Duration", "Error")

	var failed []string
	for _, res := range results {
		status, msg := "ok", ""
		if !res.Passed() {
			status, msg = "FAIL", res.Err.Error()
			failed = append(failed, res.Name)
			a.log.WithFields(logrus.Fields{
				"check":  res.Name,
				"worker": res.WorkerID,
			}).WithError(res.Err).Error("check failed")
		}
		table.Append([]string{
			res.Name,
			status,
			strconv.Itoa(res.Attempts),
			res.Duration.Round(time.Microsecond).String(),
			msg,
		})
	}
	table.Render()

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", checks.ErrCheckFailed, strings.Join(failed, ", "))
	}
	return nil
}
