// Package main is the entry point for the hbnb console.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := bootstrap(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hbnb: %v\n", err)
		os.Exit(1)
	}
}
