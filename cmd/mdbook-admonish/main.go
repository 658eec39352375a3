package main

import (
	"github.com/bornholm/mdbook-admonish/internal/command"
	"github.com/bornholm/mdbook-admonish/internal/command/install"
)

func main() {
	command.Main(
		"mdbook-admonish", "an mdBook preprocessor for Material Design admonishments",
		command.SupportsCommand(),
		install.Command(),
	)
}
