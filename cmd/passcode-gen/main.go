package main

import (
	"fmt"
	"log"
	"os"

	"auto-concierge.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPasscode
	fatalfFn       = log.Fatalf
)

// resolvePasscode takes the passcode from argv or generates a fresh one
func resolvePasscode(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return crypto.GeneratePasscode()
}

func main() {
	passcode, err := resolvePasscode(os.Args[1:])
	if err != nil {
		fatalfFn("Failed to generate passcode: %v", err)
	}

	printfFn("Passcode: %s\n", passcode)

	hash, err := generateHashFn(passcode)
	if err != nil {
		fatalfFn("Failed to hash passcode: %v", err)
	}

	printfFn("PBKDF2 Hash: %s\n", hash)
}
