package main

import "github.com/gaurav-prasanna/auditpipe/cmd"

func main() {
	cmd.Execute()
}
