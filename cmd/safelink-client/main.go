package main

import "github.com/oshokin/safelink/cmd/safelink-client/cmd"

func main() {
	cmd.Execute()
}
