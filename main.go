package main

import "github.com/autobrr/regexmatcher/cmd"

func main() {
	cmd.Execute()
}
