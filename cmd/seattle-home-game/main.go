package main

import "github.com/pfrederiksen/seattle-home-game/internal/cli"

func main() {
	cli.Execute()
}
