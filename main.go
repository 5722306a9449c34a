package main

import "github.com/chukul/cloudrecon/cmd"

func main() {
	cmd.Execute()
}
