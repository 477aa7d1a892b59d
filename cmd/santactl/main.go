package main

import "github.com/mcoot/santaworkshop/internal/cli"

func main() {
	cli.Execute()
}
