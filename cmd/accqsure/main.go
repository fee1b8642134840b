package main

import (
	"os"

	"github.com/accqsure/accqsure-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
