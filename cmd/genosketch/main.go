package main

import "genosketch/internal/cli"

func main() {
	cli.Execute()
}
