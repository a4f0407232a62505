package main

import "cashplan/cmd"

func main() {
	cmd.Execute()
}
