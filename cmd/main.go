package main

import (
	"os"

	"github.com/orgball2608/insta-profile-sync/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
