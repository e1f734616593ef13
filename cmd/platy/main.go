// Package main is the entry point for the platy CLI tool.
package main

import (
	"github.com/anthropics/platy/internal/cmd"
)

func main() {
	cmd.Execute()
}
