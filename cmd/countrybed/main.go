package main

import (
	"os"
)

func main() {
	if err := Execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
