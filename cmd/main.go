package main

import (
	"log"

	_ "time/tzdata"

	"event-manager-api/cmd/server"
	"event-manager-api/internal/adapters/config"
)

func main() {
	cfg := config.Get()
	srv, err := server.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	srv.Start()
}
