package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		printCmdError(err)
		os.Exit(1)
	}
}

func printCmdError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}
