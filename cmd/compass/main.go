// Package main provides the compass CLI, a local-first tracker for
// behavioral logs, crisis events, daily schedules, and goals.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
