// Command authmock runs the mock authentication service the matchday
// client logs in against.
package main

import (
	"log"

	"github.com/aussiebroadwan/matchday/internal/auth/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
