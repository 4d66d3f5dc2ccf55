package main

import "schtrace/cmd/schtrace/cmd"

func main() {
	cmd.Execute()
}
