package main

import "github.com/skemaro/avroschema/cmd/avroschema/cmd"

func main() {
	cmd.Execute()
}
