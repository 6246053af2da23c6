package main

import "github.com/ajmok/streamstats/cmd"

func main() {
	cmd.Execute()
}
