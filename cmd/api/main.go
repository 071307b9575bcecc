// Package main is the entry point for the travel journal API.
// Its sole responsibility is wiring dependencies together behind the
// serve, migrate and resolve commands. No business logic belongs here.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
