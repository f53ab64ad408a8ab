package main

import (
	"log"

	"github.com/MrSnakeDoc/nitron/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ nitron failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ nitron stopped with error: %v", err)
	}
}
