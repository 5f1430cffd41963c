package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/meur/shopkeep/internal/auth"
	"github.com/meur/shopkeep/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	campaignID := flag.String("campaign", "", "Campaign the GM runs")
	ttl := flag.Duration("ttl", cfg.GMTokenTTL, "Token lifetime")
	flag.Parse()

	if cfg.GMSecret == "" {
		log.Fatal("GM_TOKEN_SECRET is required")
	}

	token, err := auth.Issue(cfg.GMSecret, *campaignID, *ttl, time.Now())
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
