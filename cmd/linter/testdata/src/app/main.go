package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 5 {
		os.Exit(2) // want "found usage of os.Exit outside of main function"
	}
	return nil
}
