package main

import "github.com/quillstack/notes-server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
