package main

import (
	"os"

	"github.com/caffeine-storm/isoroom/cmd"
)

func main() {
	cmd.Main(os.Args)
}
