package main

import "facscope/cmd"

func main() {
	cmd.Execute()
}
