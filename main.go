package main

import "mortsim/cmd"

func main() {
	cmd.Execute()
}
