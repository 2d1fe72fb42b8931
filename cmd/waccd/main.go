package main

import (
	"os"

	"github.com/HarshMaht02004/wacc-backend/cmd/waccd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
