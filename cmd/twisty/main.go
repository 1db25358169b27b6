// twisty - interactive 3x3x3 twisty puzzle for the terminal.
package main

import (
	"github.com/SeamusWaldron/twisty/internal/cli"
)

func main() {
	cli.Execute()
}
