// Package main is the entry point for the smudge CLI.
package main

import "github.com/smudge-dev/smudge/cmd"

func main() {
	cmd.Execute()
}
