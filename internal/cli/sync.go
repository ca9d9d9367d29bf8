package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/syncer"
	"github.com/orgball2608/insta-profile-sync/pkg/formatter"
	"github.com/spf13/cobra"
)

func newSyncCmd(r Runner) *cobra.Command {
	var (
		visibility string
		cleanDays  int
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download new media of every tracked profile",
		Long: "Download new media of every tracked profile. The exit code is 0 when every " +
			"profile synced completely and 1 otherwise.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := domain.ParseVisibilityFilter(visibility)
			if err != nil {
				return err
			}

			return r.WithSyncer(cmd.Context(), func(s syncer.Syncer) error {
				if cleanDays > 0 {
					removed, err := s.Clean(cmd.Context(), cleanDays)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d files older than %d days\n", removed, cleanDays)
				}

				report, err := s.Sync(cmd.Context(), filter)
				printReport(cmd.OutOrStdout(), report)
				if err != nil {
					return err
				}
				if !report.AllSucceeded() {
					return &exitError{code: 1}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&visibility, "visibility", "all", "public, private or all")
	cmd.Flags().IntVar(&cleanDays, "clean-days", 0, "delete files downloaded more than this many days ago first")
	return cmd
}

func printReport(out io.Writer, report domain.RunReport) {
	if len(report.Runs) == 0 {
		fmt.Fprintln(out, "No profiles to sync")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, run := range report.Runs {
		line := fmt.Sprintf("%s\t%s\tplanned=%d\tfetched=%d\tfailed=%d",
			run.TargetUsername, run.Outcome, run.ItemsPlanned, run.ItemsFetched, run.ItemsFailed)
		if run.ErrorKind != "" {
			line += "\t" + run.ErrorKind + ": " + run.ErrorMessage
		}
		fmt.Fprintln(w, line)
	}
	_ = w.Flush()

	succeeded, partial, failed := report.Counts()
	fmt.Fprintf(out, "%d succeeded, %d partial, %d failed in %s\n",
		succeeded, partial, failed, formatter.FormatDuration(report.FinishedAt.Sub(report.StartedAt)))
}

func newCleanCmd(r Runner) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete media files downloaded more than --days ago",
		Long: "Delete media files downloaded more than --days ago. Their records are kept, " +
			"so the media is not downloaded again.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.WithSyncer(cmd.Context(), func(s syncer.Syncer) error {
				removed, err := s.Clean(cmd.Context(), days)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d files older than %d days\n", removed, days)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "age in days")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

func newServeCmd(r Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync on a schedule and serve /healthz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.Serve(cmd.Context())
		},
	}
}
