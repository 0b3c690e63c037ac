package main

import (
	"github.com/licensex-io/licensex/cmd"
)

func main() {
	cmd.Execute()
}
