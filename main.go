package main

import (
	"github.com/joho/godotenv"
	"github.com/lepinkainen/bookflow/cmd"
)

var execute = cmd.Execute

func main() {
	// Environment provided by the runtime (orchestrator, Docker) wins over .env files.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	execute()
}
