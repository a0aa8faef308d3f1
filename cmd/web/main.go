package main

import (
	"log"

	"github.com/joho/godotenv"

	"typerace/internal/server"
)

func main() {
	// Best effort; a missing .env just means env vars come from the process.
	_ = godotenv.Load()

	if err := server.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
