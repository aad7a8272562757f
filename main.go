package main

import (
	"os"

	"github.com/example/ridepool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
