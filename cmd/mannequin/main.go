package main

import "mannequin/internal/cli"

func main() {
	cli.Execute()
}
