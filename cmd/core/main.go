// cmd/core/main.go
package main

import (
	"context"
	"flag"
	"log"

	"github.com/plantradar/plantradar/pkg/config"
	"github.com/plantradar/plantradar/pkg/core"
	"github.com/plantradar/plantradar/pkg/lifecycle"
)

func main() {
	configPath := flag.String("config", "/etc/plantradar/core.json", "Path to config file")
	flag.Parse()

	var cfg core.Config
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	server, err := core.NewServer(&cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ServiceName:    "plantradar-core",
		HTTPAddr:       cfg.ListenAddr,
		Handler:        server.Router(),
		GRPCHealthAddr: cfg.GRPCHealthAddr,
		Service:        server,
	}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
