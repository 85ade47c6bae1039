package main

import (
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
