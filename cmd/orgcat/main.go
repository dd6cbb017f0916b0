package main

import (
	"log"

	"github.com/MrSnakeDoc/orgcat/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ orgcat failed to start: %v", err)
	}
}
