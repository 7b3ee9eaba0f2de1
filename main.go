package main

import (
	"os"

	"github.com/08Ankit28/AI-Guru/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
