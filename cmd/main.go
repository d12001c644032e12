package main

import (
	"errors"
	"os"

	logger2 "gitlab.com/pagetest.net/internal/global/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			logger2.Error("Command failed", "error", err)
		}
		os.Exit(1)
	}
}
