package main

import (
	"github.com/haierkeys/note-storage-engine/cmd"
)

func main() {
	cmd.Execute()
}
