// Package main provides the CLI entry point for vidkeep.
package main

import (
	"fmt"
	"os"
)

const (
	appName    = "vidkeep"
	appVersion = "0.3.0"
)

func main() {
	if len(os.Args) < 2 {
		if err := runMenu(nil); err != nil {
			printError(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch os.Args[1] {
	case "concat":
		err = runConcat(os.Args[2:])
	case "transfer":
		err = runTransfer(os.Args[2:])
	case "organize":
		err = runOrganize(os.Args[2:])
	case "settings":
		err = runSettings(os.Args[2:])
	case "menu":
		err = runMenu(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Video library housekeeping

Usage:
  %s [command] [options]

Commands:
  menu      Interactive menu (default when no command is given)
  concat    Join clips into one file with FFmpeg (no re-encode)
  transfer  Move videos from a source folder to a destination folder
  organize  Sort videos into YYYY-MM-DD folders by creation date
  settings  Show or change saved settings
  version   Print version information
  help      Show this help message

Run '%s <command> --help' for command options.
`, appName, appName, appName)
}
