package main

import (
	"github.com/coursehub/ai-service/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional in deployed environments; config comes from real env vars there.
	godotenv.Load()
}
