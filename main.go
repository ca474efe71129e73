package main

import (
	"os"

	"github.com/thenoetrevino/boardsync/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
