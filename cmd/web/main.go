package main

import (
	"log"

	"github.com/hugovasko/intern-com-backend/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
