package main

import (
	"context"
	"fmt"
	"os"

	"ruleproc/internal/app"
	"ruleproc/internal/config"
)

// main starts the rule processor from the CONFIG_FILE/LOG_LEVEL/LOG_PATH
// ambient environment (SPEC_FULL §6), grounded on the teacher's
// cmd/alerting/main.go fmt.Fprintln(os.Stderr, ...)+os.Exit idiom, adapted
// from CLI flags to this spec's env-var-driven contract.
// Params: none, reads environment.
// Returns: none, exits the process.
func main() {
	path, err := config.ResolveConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "config resolution failed:", err.Error())
		os.Exit(2)
	}

	supervisor, err := app.New(path, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_PATH"))
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "startup failed:", err.Error())
		os.Exit(1)
	}

	if err := supervisor.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "run failed:", err.Error())
		os.Exit(1)
	}
}
