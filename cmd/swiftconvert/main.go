package main

import "github.com/devbush/swiftconvert/internal/adapters/cli"

func main() {
	cli.Execute()
}
