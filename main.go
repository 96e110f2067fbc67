package main

import (
	"github.com/courtdata/pbparse/internal/cmd"
)

func main() {
	cmd.Execute()
}
