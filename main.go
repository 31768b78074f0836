// Package main is the entry point for the colfmt CLI.
package main

import "colfmt.dev/pkg/colfmt/cmd"

func main() {
	cmd.Execute()
}
