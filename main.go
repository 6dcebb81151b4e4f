package main

import "github.com/VoxDroid/relcfg/cmd"

func main() {
	cmd.Execute()
}
