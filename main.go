package main

import "episodemap/galaxy/cmd"

func main() {
	cmd.Execute()
}
