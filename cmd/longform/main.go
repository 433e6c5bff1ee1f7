// Package main provides the longform CLI.
package main

import "github.com/leapstack-labs/longform/internal/cli"

func main() {
	cli.Execute()
}
