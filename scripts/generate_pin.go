package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_pin.go <pin>")
	}

	pin := os.Args[1]
	if len(pin) < 4 {
		log.Fatal("PIN must be at least 4 characters")
	}
	cost := 12

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	fmt.Printf("PIN: %s\n", pin)
	fmt.Printf("Hash: %s\n", string(hash))

	err = bcrypt.CompareHashAndPassword(hash, []byte(pin))
	if err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Println("✅ Hash verified successfully!")
}
