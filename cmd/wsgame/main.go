package main

import "github.com/mcoot/wordsearch/internal/cli"

func main() {
	cli.Execute()
}
