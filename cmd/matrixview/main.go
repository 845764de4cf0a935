package main

import (
	"fmt"
	"os"

	"github.com/mmynk/matrixview/internal/cli"
)

func main() {
	if err := cli.Run(cli.NewApp(".env"), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
