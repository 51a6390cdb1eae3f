package main

import "github.com/pfrederiksen/igpost/internal/cli"

func main() {
	cli.Execute()
}
