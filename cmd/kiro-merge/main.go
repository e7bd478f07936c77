package main

import (
	"context"
	"os"

	"kiro.dev/kiro-merge/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	os.Exit(cli.Execute(context.Background(), rootCmd, os.Args[1:]))
}
