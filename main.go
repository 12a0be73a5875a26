package main

import (
	"os"

	"github.com/pkedy/widl-grpc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
