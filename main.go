package main

import "github.com/cdnops/fastly-sync/internal/cmd"

func main() {
	cmd.Execute()
}
