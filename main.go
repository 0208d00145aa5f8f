package main

import "github.com/kamal-hamza/chartfetch/cmd"

func main() {
	cmd.Execute()
}
