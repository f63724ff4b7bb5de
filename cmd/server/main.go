package main

import (
	"context"
	"flag"
	"log"

	"blockhold/server/internal/app"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the YAML configuration file")
	flag.Parse()

	if err := app.Run(context.Background(), configPath); err != nil {
		log.Fatalf("%v", err)
	}
}
