package main

import (
	"os"

	"github.com/matteooxx/whisper-transcriber/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
