package main

import "github.com/pfrederiksen/corona-scraper/internal/cli"

func main() {
	cli.Execute()
}
