package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	// The event loop restores the terminal before re-panicking; report and exit here
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nefield crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newCLI().rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "efield:", err)
		os.Exit(1)
	}
}
