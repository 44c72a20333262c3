package main

import (
	"os"

	"github.com/moonman369/Crowd-Funding-Contract/internal/cli"
)

func main() {
	env := cli.Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	os.Exit(cli.Run(env, os.Args[1:]))
}
