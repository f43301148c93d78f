package main

import "github.com/toolgate-dev/toolgate/internal/cli"

func main() {
	cli.Execute()
}
