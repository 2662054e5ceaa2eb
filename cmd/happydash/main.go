package main

import "happydash/internal/cli"

func main() {
	cli.Execute()
}
