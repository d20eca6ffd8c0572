package main

import (
	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/router"
	"blogicum/internal/services"
	"log"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(gdb)

	r, err := router.New(cfg, store, services.NewLocalMedia(cfg.MediaRoot))
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Blogicum server starting on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
