package main

import "github.com/andrescamacho/craftreq/internal/adapters/cli"

func main() {
	cli.Execute()
}
