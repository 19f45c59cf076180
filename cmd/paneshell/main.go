package main

import "github.com/bnema/paneshell/internal/cli/cmd"

func main() {
	cmd.Execute()
}
