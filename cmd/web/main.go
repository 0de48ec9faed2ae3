package main

import (
	"aula_backend/internal/app"
	"aula_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
