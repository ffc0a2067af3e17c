package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
)

const secretsFile = ".env.new_keys"

// NewJWTSecret returns a random base64 HS256 signing secret.
func NewJWTSecret() (string, error) {
	key := securecookie.GenerateRandomKey(64)
	if key == nil {
		return "", fmt.Errorf("could not generate signing key")
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

// GenerateAndPrintSecret writes a fresh JWT_SECRET to out and to
// .env.new_keys in the working directory.
func GenerateAndPrintSecret(out io.Writer) error {
	secret, err := NewJWTSecret()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "================================================")
	fmt.Fprintf(out, "JWT_SECRET=%s\n", secret)
	fmt.Fprintln(out, "================================================")

	if err := os.WriteFile(secretsFile, []byte("JWT_SECRET="+secret+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", secretsFile, err)
	}

	fmt.Fprintf(out, "Secret written to '%s'. Copy it into your .env file.\n", secretsFile)
	fmt.Fprintln(out, "Rotating the secret invalidates every issued token.")
	return nil
}
