package main

import "github.com/notargets/shearbox/cmd"

func main() {
	cmd.Execute()
}
