// Package main is the entry point for the tracehook CLI.
package main

import "tracehook.dev/pkg/tracehook/cmd"

func main() {
	cmd.Execute()
}
