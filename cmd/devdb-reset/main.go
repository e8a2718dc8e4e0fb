package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// load the .env file if it exists
	godotenv.Load()

	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorize(colorRed, "error:"), err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitUsage)
	}
}
