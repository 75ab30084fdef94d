package main

import "github.com/berdav/catimg/cmd/catimg/cmd"

func main() {
	cmd.Execute()
}
