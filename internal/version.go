package internal

import "fmt"

// Set at build time with -ldflags "-X github.com/phonolab/phonolab/internal.Version=..."
var Version = ""
var Commit = ""

func PrintableVersion() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
