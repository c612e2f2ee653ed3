// Package main provides the gridgen CLI, a thin command-line front end for
// rasterizing an atom list into a density grid.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("gridgen %s\n", version)
	case "rasterize":
		if err := runRasterize(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "gridgen:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("gridgen - rasterize atoms onto a density grid")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version                Show version")
	fmt.Println("  rasterize              Rasterize an atom list into a grid file")
	fmt.Println()
	fmt.Println("Coming soon: backward, batch")
}
