package main

import "github.com/notargets/golinuvlm/cmd"

func main() {
	cmd.Execute()
}
