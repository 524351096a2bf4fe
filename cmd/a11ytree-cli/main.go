package main

import "a11ytree/cmd/a11ytree-cli/cmd"

func main() {
	cmd.Execute()
}
