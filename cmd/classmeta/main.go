package main

import "github.com/nfrund/classmeta/cmd/classmeta/cmd"

func main() {
	cmd.Execute()
}
