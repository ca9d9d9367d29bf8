package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/internal/roster"
	"github.com/orgball2608/insta-profile-sync/pkg/formatter"
	"github.com/spf13/cobra"
)

func newAddCmd(r Runner) *cobra.Command {
	var private bool

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Start tracking a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			visibility := domain.VisibilityPublic
			if private {
				visibility = domain.VisibilityPrivate
			}

			return r.WithRoster(cmd.Context(), func(ros roster.Roster) error {
				t, err := ros.Add(cmd.Context(), args[0], visibility)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tracking @%s (%s)\n", t.Username, t.Visibility)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&private, "private", false, "the profile is private")
	return cmd
}

func newRemoveCmd(r Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Stop tracking a profile and forget its history",
		Long: "Stop tracking a profile. Its media records and sync runs are deleted; " +
			"downloaded files stay on disk.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.WithRoster(cmd.Context(), func(ros roster.Roster) error {
				if err := ros.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed @%s\n", domain.SanitizeUsername(args[0]))
				return nil
			})
		},
	}
}

func newListCmd(r Runner) *cobra.Command {
	var visibility string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := domain.ParseVisibilityFilter(visibility)
			if err != nil {
				return err
			}

			return r.WithRoster(cmd.Context(), func(ros roster.Roster) error {
				summaries, err := ros.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				printTargets(cmd, summaries)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&visibility, "visibility", "all", "public, private or all")
	return cmd
}

func printTargets(cmd *cobra.Command, summaries []domain.TargetSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles tracked")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tVISIBILITY\tFULL NAME\tFOLLOWERS\tMEDIA\tLAST SYNCED\tLAST RUN")
	for _, s := range summaries {
		lastRun := "-"
		if s.LastRun != nil {
			lastRun = string(s.LastRun.Outcome)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Target.Username,
			s.Target.Visibility,
			s.Target.Profile.FullName,
			formatter.FormatNumber(s.Target.Profile.Followers),
			formatter.FormatNumber(s.MediaCount),
			formatter.FormatTime(s.Target.LastSyncedAt),
			lastRun,
		)
	}
	_ = w.Flush()
}

func newImportCmd(r Runner) *cobra.Command {
	var private bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add the profiles listed in a JSON or YAML file",
		Long: "Add the profiles listed in a JSON or YAML file. The file is either a list of " +
			"usernames or a mapping with public and private lists. Profiles already tracked are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			visibility := domain.VisibilityPublic
			if private {
				visibility = domain.VisibilityPrivate
			}

			return r.WithRoster(cmd.Context(), func(ros roster.Roster) error {
				res, err := ros.Import(cmd.Context(), f, visibility)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles, %d already tracked\n", len(res.Added), len(res.Skipped))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&private, "private", false, "visibility for a plain list of usernames")
	return cmd
}
