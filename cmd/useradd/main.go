// Command useradd inserts a user into the store. The password is read from
// the terminal without echo and stored either as plaintext (matching the
// legacy comparison mode) or as a bcrypt hash.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dkravets/video2mp3/internal/users"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {

	_ = godotenv.Load()

	email := flag.String("email", "", "user e-mail (doubles as the login username)")
	useBcrypt := flag.Bool("bcrypt", false, "store a bcrypt hash instead of the plaintext password")
	flag.Parse()

	if *email == "" {
		log.Fatal("useradd: -email is required")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("useradd: DATABASE_DSN is required")
	}

	password, err := readPassword()
	if err != nil {
		log.Fatalf("useradd: %v", err)
	}

	if *useBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("useradd: hashing password: %v", err)
		}
		password = string(hash)
	}

	ctx := context.Background()

	repo, db, err := users.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("useradd: %v", err)
	}
	defer db.Close()

	user, err := repo.Create(ctx, &users.User{Email: *email, Password: password})
	if err != nil {
		log.Fatalf("useradd: %v", err)
	}

	fmt.Printf("created user %s (id=%s)\n", user.Email, user.ID)
}

func readPassword() (string, error) {

	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("empty password")
	}

	return string(first), nil
}
