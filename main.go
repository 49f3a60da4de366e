package main

import "github.com/notargets/fastsf/cmd"

func main() {
	cmd.Execute()
}
