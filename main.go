package main

import "github.com/bloodmagesoftware/hemesh/cmd"

func main() {
	cmd.Execute()
}
