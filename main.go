package main

import "github.com/omniverse/offline-scrobbler/cmd"

func main() {
	cmd.Execute()
}
