package main

import (
	"github.com/username/dbimport/cmd"
)

func main() {
	cmd.Execute()
}
