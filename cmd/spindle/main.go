package main

import "github.com/rosdahl/spindle/internal/cli"

func main() {
	cli.Execute()
}
