package main

import (
	"casting_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, в контейнере переменные приходят извне
	_ = godotenv.Load()

	app.Run()
}
