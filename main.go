package main

import "github.com/khanhnv2901/r2s-cli/cmd"

// execCmd is indirected so tests can stub command execution.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
