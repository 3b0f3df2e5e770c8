package main

import (
	"github.com/vexlabs/vexcheck/cmd"
)

func main() {
	cmd.Execute()
}
