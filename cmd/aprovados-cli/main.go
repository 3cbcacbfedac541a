package main

import "github.com/nfrund/aprovados/cmd/aprovados-cli/cmd"

func main() {
	cmd.Execute()
}
