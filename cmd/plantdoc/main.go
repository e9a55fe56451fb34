package main

import "github.com/dmateus/plantdoc/internal/commands"

func main() {
	commands.Execute()
}
