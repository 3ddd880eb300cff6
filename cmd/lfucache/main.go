package main

import "lfucache/internal/cli"

func main() {
	cli.Execute()
}
