// Package main is the entry point for Framer.
package main

import "framer-go/cmd/framer/cmd"

func main() {
	cmd.Execute()
}
