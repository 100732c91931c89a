package main

import (
	"os"

	"github.com/adri-oss/adri-go/cmd/adri/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
