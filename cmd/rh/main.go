package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"redmine-hours/internal/cli"
)

func main() {
	// Load .env file if present; real environment wins
	_ = godotenv.Load()

	app := cli.NewApp()

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
