package main

import (
	"log"
	"os"

	"github.com/andrewpaige1/wordcards/commands"
	"github.com/andrewpaige1/wordcards/config"
)

func init() {
	// Load .env file if not in production environment
	if err := config.LoadDotEnv(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env file could not be loaded: %v", err)
	}
}

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
