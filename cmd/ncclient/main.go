package main

import "github.com/damianoneill/ncclient/cmd/ncclient/cmd"

func main() {
	cmd.Execute()
}
