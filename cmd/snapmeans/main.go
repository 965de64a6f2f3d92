package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/snapmeans/cmd/snapmeans/run"
	"github.com/hupe1980/snapmeans/cmd/snapmeans/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		run.Run(os.Args[2:])
	case "version":
		version.Run()
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`snapmeans - k-means clustering with record-snapped centroids

Usage:
  snapmeans <command> [options]

Commands:
  run       Cluster a delimited dataset for one or more cluster counts
  version   Print version information
  help      Show this help message

Run 'snapmeans <command> --help' for more information on a command.`)
}
