package main

import (
	"os"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
