package main

import "github.com/kossidts/lingueasy/internal/cli"

func main() {
	cli.Execute()
}
