package main

import "upc-cli/cmd"

func main() {
	cmd.Execute()
}
