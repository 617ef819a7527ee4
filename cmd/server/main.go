package main

import (
	"fmt"
	"os"

	"github.com/lspratas/atelier/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
