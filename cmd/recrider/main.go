package main

import (
	"github.com/neilberkman/recrider/internal/interface/cli"
)

// Version information, set with -ldflags at release time
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	cli.SetVersion(Version, Commit, Date)
	cli.Execute()
}
