package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iudanet/synchub/internal/device/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
	os.Exit(cli.Execute(context.Background(), version))
}
