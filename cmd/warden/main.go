// Command warden is the CLI entrypoint for the task engine.
package main

import "github.com/taskwarden/warden/internal/cli"

func main() {
	cli.Execute()
}
