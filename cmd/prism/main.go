package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		newOutput().PrintError("%v", err)
		os.Exit(1)
	}
}
