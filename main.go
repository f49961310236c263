package main

import "github.com/Ahananian1/air-quality-explorer/cmd"

func main() {
	cmd.Execute()
}
