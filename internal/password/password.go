// Package password acquires the run's secret. The rest of the system
// treats the result as an opaque byte value.
package password

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/GabeHardgrave/dircrypt/internal/models"
	"github.com/GabeHardgrave/dircrypt/internal/storage"
)

// GeneratedSize is the entropy of a --gen password before encoding.
const GeneratedSize = 32

// Prompt reads a password from the terminal without echo. When confirm
// is set it re-prompts until two entries match, for encryption runs
// where a typo would be unrecoverable.
func Prompt(out io.Writer, confirm bool) ([]byte, error) {
	for {
		fmt.Fprint(out, "Password: ")
		candidate, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return nil, &models.ConfigError{Reason: "read password", Err: err}
		}
		if len(candidate) == 0 {
			return nil, &models.ConfigError{Reason: "read password", Err: models.ErrEmptyPassword}
		}

		if !confirm {
			return candidate, nil
		}

		fmt.Fprint(out, "Verify Password: ")
		check, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return nil, &models.ConfigError{Reason: "read password", Err: err}
		}

		if bytes.Equal(candidate, check) {
			return check, nil
		}
		fmt.Fprintln(out, "Passwords do not match. Please try again.")
	}
}

// Generate creates a fresh random password, stores its URL-safe base64
// rendering in a uniquified dircrypt<N>.password file, and returns the
// encoded password along with the file path.
func Generate() ([]byte, string, error) {
	raw := make([]byte, GeneratedSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", &models.ConfigError{Reason: "generate password", Err: err}
	}

	encoded := []byte(base64.URLEncoding.EncodeToString(raw))

	path, err := storage.ForceCreateFile("dircrypt", ".password")
	if err != nil {
		return nil, "", &models.ConfigError{Reason: "create password file", Err: err}
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return nil, "", &models.ConfigError{Reason: "write password file", Err: err}
	}

	return encoded, path, nil
}

// FromFile reads the password from the given file, byte for byte.
func FromFile(path string) ([]byte, error) {
	psw, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ConfigError{Reason: fmt.Sprintf("read password file %s", path), Err: err}
	}
	if len(psw) == 0 {
		return nil, &models.ConfigError{Reason: fmt.Sprintf("password file %s", path), Err: models.ErrEmptyPassword}
	}
	return psw, nil
}
