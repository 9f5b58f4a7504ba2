package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/greenlit/matte/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout carries previews and paths)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv(cli.EnvLogLevel) == "debug" {
		log.Printf("matte v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	if err := cli.Execute(version); err != nil {
		color.New(color.FgRed).Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}
}
