package main

import (
	"github.com/runfinder/race-fetcher/internal/cli"
)

func main() {
	cli.Execute()
}
