// Package main is the entry point for the skillrate CLI tool, which rates
// players from ranked match sheets and maintains a persistent ladder.
package main

import "github.com/pable/go-skill-ratings/cmd"

func main() {
	cmd.Execute()
}
