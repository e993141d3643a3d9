// Package main is the entry point for the hz CLI tool.
package main

import (
	"github.com/sagarsuraksha/hz/internal/cmd"
)

func main() {
	cmd.Execute()
}
