// Command usnjournal parses a volume's NTFS change journal, filters and
// aggregates what it finds, and reports the copy/type/explorer replace
// patterns the analysis package recognises.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}
