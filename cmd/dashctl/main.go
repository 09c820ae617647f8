// Command dashctl manages SnapSense profiles and exports reports from the
// local data directory. Stop the server first: the profile store is
// single-process.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
