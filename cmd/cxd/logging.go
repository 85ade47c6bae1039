package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// setupLogging sets the level from the configured name, raised by -v (info)
// and -vv (debug). Log lines go to stderr so stdout carries only the dump.
func setupLogging(level string, verbose int) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	switch {
	case verbose >= 2:
		lvl = log.DebugLevel
	case verbose == 1 && lvl > log.InfoLevel:
		lvl = log.InfoLevel
	}

	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBU").Bold(true).MaxWidth(4).Foreground(lipgloss.Color("63"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).MaxWidth(4).Foreground(lipgloss.Color("214"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERRO").Bold(true).MaxWidth(4).Foreground(lipgloss.Color("204"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))

	log.SetOutput(os.Stderr)
	log.SetStyles(styles)
	log.SetLevel(lvl)
}
