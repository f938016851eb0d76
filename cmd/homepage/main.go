package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "new":
		err = runNew(os.Args[2:])
	case "build":
		err = runBuild(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "version":
		fmt.Printf("homepage %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`homepage - content pipeline and server for a personal website

Usage:
  homepage <command> [flags]

Commands:
  new <dir>     Create a starter site with sample content
  build         Extract content, write the artifact, the feed and edge rules
  serve         Serve the site from a built artifact
  version       Print the homepage version
  help          Show this help message

Examples:
  homepage new mysite
  homepage build --content content --out dist
  homepage build --target vercel
  homepage serve --dev`)
}
