package main

import "github.com/oshokin/clickguard/cmd/clickguard/cmd"

func main() {
	cmd.Execute()
}
