package main

import "github.com/sadopc/peakr/internal/cli"

func main() {
	cli.Execute()
}
