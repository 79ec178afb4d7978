package main

import "doabli/internal/cli"

func main() {
	cli.Execute()
}
