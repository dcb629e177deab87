package main

import "github.com/urlup/urlup/internal/cli"

func main() {
	cli.Execute()
}
