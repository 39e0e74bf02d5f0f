package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func generatePasswordHash(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// run prints SUPERADMIN_PASSWORD_HASH for the given password
func run(args []string, out io.Writer) error {
	if len(args) < 1 || args[0] == "" {
		return errors.New("usage: genhash <password>")
	}
	hash, err := generatePasswordHash(args[0], 12)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "SUPERADMIN_PASSWORD_HASH=%s\n", hash)
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
