package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"maisquecardapio.backend/pkg/crypto"
)

// sessionKeyBytes is the AES-256 key size expected by SESSION_ENCRYPTION_KEY
const sessionKeyBytes = 32

var generateToken = crypto.GenerateRandomToken

func validateInputs(tokenBytes int) error {
	if tokenBytes < 16 {
		return fmt.Errorf("invalid bytes: %d (minimum 16)", tokenBytes)
	}
	return nil
}

// buildSecrets returns env assignments in a stable order
func buildSecrets(tokenBytes int) ([][2]string, error) {
	if err := validateInputs(tokenBytes); err != nil {
		return nil, err
	}

	specs := []struct {
		name string
		size int
	}{
		{"JWT_SECRET", tokenBytes},
		{"SESSION_ENCRYPTION_KEY", sessionKeyBytes},
		{"WEBHOOK_API_KEY", tokenBytes},
		{"CRON_SECRET", tokenBytes},
	}

	out := make([][2]string, 0, len(specs))
	for _, s := range specs {
		v, err := generateToken(s.size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", s.name, err)
		}
		out = append(out, [2]string{s.name, v})
	}
	return out, nil
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("secret-gen", flag.ContinueOnError)
	tokenBytes := fs.Int("bytes", 32, "random bytes per secret (hex encoded)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secrets, err := buildSecrets(*tokenBytes)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "# Generated secrets, paste into .env")
	for _, kv := range secrets {
		_, _ = fmt.Fprintf(out, "%s=%s\n", kv[0], kv[1])
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
