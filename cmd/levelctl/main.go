package main

import "github.com/Sunyelw/logging-log4j2/cmd/levelctl/cmd"

func main() {
	cmd.Execute()
}
