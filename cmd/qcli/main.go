package main

import "github.com/fyerfyer/blockq/cmd/qcli/cmd"

func main() {
	cmd.Execute()
}
