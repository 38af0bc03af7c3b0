package main

import "shireesh.com/boilergen/cmd"

func main() {
	cmd.Execute()
}
