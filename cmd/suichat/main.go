package main

import (
	"os"

	"suichat/cmd/suichat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
