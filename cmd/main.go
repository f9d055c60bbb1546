package main

import (
	"log"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	_ "github.com/securechat/securechat"
	"github.com/securechat/securechat/config"
)

func main() {
	// fail before serving any interaction when the configuration is broken
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Println("Started")

	if err := funcframework.Start(cfg.Port); err != nil {
		log.Fatalf("funcframework.Start: %v", err)
	}
}
