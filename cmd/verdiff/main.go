package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"verdiff/internal/app"
	"verdiff/internal/logging"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: verdiff <document.json>")
		os.Exit(2)
	}

	logger, closeLogger := logging.New()
	defer closeLogger()

	model, err := app.NewModel(os.Args[1], logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}
