package main

import (
	"flag"
	"fmt"
	"log"

	"auto-concierge.backend/pkg/crypto"
)

func main() {
	hexLen := flag.Int("hex-len", 32, "random hex length (must be even)")
	flag.Parse()

	if *hexLen <= 0 || *hexLen%2 != 0 {
		log.Fatalf("invalid hex-len: %d (must be positive and even)", *hexLen)
	}

	key, err := crypto.GenerateRandomToken(*hexLen / 2)
	if err != nil {
		log.Fatalf("failed to generate admin key: %v", err)
	}

	fmt.Println("Generated admin API key")
	fmt.Printf("ADMIN_API_KEY=ak_%s\n", key)
}
