// dashboard-report prints a user's task dashboard from the command line
//
// Usage:
//
//	dashboard-report --token <token>
//	dashboard-report --xlsx dashboard.xlsx
//	dashboard-report --json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
