package main

import (
	"github.com/permadex/godexd/internal/cli"
)

func main() {
	cli.Execute()
}
