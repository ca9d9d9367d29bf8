package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// exitError carries an exit code for outcomes that were already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd(r Runner) *cobra.Command {
	root := &cobra.Command{
		Use:           "insta-profile-sync",
		Short:         "Keep local copies of Instagram profiles in sync",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(r),
		newRemoveCmd(r),
		newListCmd(r),
		newImportCmd(r),
		newSyncCmd(r),
		newCleanCmd(r),
		newServeCmd(r),
	)
	return root
}

// Run executes args and maps the result onto an exit code.
func Run(ctx context.Context, args []string, r Runner, stdout, stderr io.Writer) int {
	root := newRootCmd(r)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	fmt.Fprintln(stderr, "Error:", err)
	return 1
}
