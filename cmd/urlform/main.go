// Command urlform converts between application/x-www-form-urlencoded bodies
// and JSON.
//
// Usage:
//
//	urlform decode [--group] [--output json|yaml] [--compression none|gzip|zstd] [file]
//	urlform encode [file]
//
// Both commands read standard input when no file is named.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs the command and returns its exit status.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
