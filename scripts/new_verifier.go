package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/rider-docs-api/verification"
)

// Quick utility to create a fuel station or police account
// Usage: go run scripts/new_verifier.go <email> <password> <fuel-station|police>
func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run scripts/new_verifier.go <email> <password> <fuel-station|police>")
		fmt.Println("Example: go run scripts/new_verifier.go pump42@example.com s3cret fuel-station")
		os.Exit(1)
	}

	email, password := os.Args[1], os.Args[2]
	role, err := verification.ParseRole(os.Args[3])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("To create the verifier in MongoDB, run:\n")
	fmt.Printf("db.verifiers.insertOne({\n")
	fmt.Printf("  \"_id\": \"%s\",\n", uuid.New().String())
	fmt.Printf("  \"email\": \"%s\",\n", email)
	fmt.Printf("  \"password\": \"%s\",\n", string(hashedPassword))
	fmt.Printf("  \"role\": \"%s\",\n", role)
	fmt.Printf("  \"name\": \"%s\",\n", email)
	fmt.Printf("  \"createdAt\": ISODate(\"%s\")\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Printf("})\n")
}
