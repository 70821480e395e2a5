package main

import (
	"github.com/witctl/witctl/cmd"
)

var version = "0.0.1"

func main() {
	cmd.Execute(version)
}
