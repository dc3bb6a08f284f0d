package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Println("Usage: snapshot <tool> [flags]")
	fmt.Println("Available tools:")
	fmt.Println("  chromedp - render URLs in headless Chrome and save their HTML")
	fmt.Println("  colly    - fetch URLs with a plain GET and save their HTML")
	fmt.Println("  tabs     - list the tab anchors and panels found in saved pages")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	var err error
	switch tool, args := os.Args[1], os.Args[2:]; tool {
	case "chromedp":
		err = runChromedp(args)
	case "colly":
		err = runColly(args)
	case "tabs":
		err = runTabs(args, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown tool: %s\n", tool)
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snapshot %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
