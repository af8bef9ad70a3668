package main

import "github.com/oshokin/safelink/cmd/safelink-server/cmd"

func main() {
	cmd.Execute()
}
