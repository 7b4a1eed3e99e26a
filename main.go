package main

import "github.com/gaurav-prasanna/proofpipe/cmd"

func main() {
	cmd.Execute()
}
