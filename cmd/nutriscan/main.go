package main

import (
	"fmt"
	"nutriscan/internal/di"
	"nutriscan/internal/structures"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	flags := structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "configs/config.yaml", "path to the config file")
	pflag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stderr")
	pflag.Parse()

	if _, err := di.InitApp(&flags); err != nil {
		fmt.Fprintf(os.Stderr, "nutriscan: %s\n", err)
		os.Exit(1)
	}
}
