package main

import (
	"log"

	"github.com/grimwiz/karakeep/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ karakeep failed to start: %v", err)
	}
}
