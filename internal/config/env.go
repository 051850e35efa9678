package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the key file password is prompted at runtime and stored in memory - use GetKeyFilePasswordBytes()
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	SignerURL     string        `envconfig:"SIGNER_URL" default:"http://localhost:3030"`
	SignerMethod  string        `envconfig:"SIGNER_METHOD" default:"OPRFSecp256k1"`
	SignerTimeout time.Duration `envconfig:"SIGNER_TIMEOUT" default:"30s"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON       bool          `envconfig:"LOG_JSON" default:"false"`
	KeyFileDir    string        `envconfig:"KEYFILE_DIR" default:"."`
	KeyFileExport bool          `envconfig:"KEYFILE_EXPORT" default:"false"`
	DevSignerPort string        `envconfig:"DEV_SIGNER_PORT" default:"3030"`
	DevSignerSeed string        `envconfig:"DEV_SIGNER_SEED" default:"human-network-dev-signer"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.SignerTimeout <= 0 {
		return errors.New("SIGNER_TIMEOUT must be positive")
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSignerURL returns the default signer URL shown in the form
func GetSignerURL() string {
	return Get().SignerURL
}

// GetSignerMethod returns the method identifier sent to the signer
func GetSignerMethod() string {
	return Get().SignerMethod
}

// GetSignerTimeout returns the HTTP timeout for signer requests
func GetSignerTimeout() time.Duration {
	return Get().SignerTimeout
}

// GetKeyFileDir returns directory where exported key files are written
func GetKeyFileDir() string {
	return Get().KeyFileDir
}

// KeyFileExportEnabled reports whether /oprf/export is served
func KeyFileExportEnabled() bool {
	return Get().KeyFileExport
}

var passwordBytes []byte

// PromptForPassword prompts the user for the key file password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter key file password: ")
	if err != nil {
		return err
	}
	passwordBytes = raw
	return nil
}

// ReadPassword reads a non-empty password from the terminal without echo.
// Caller must zero the returned slice after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// SetKeyFilePassword stores a password without prompting (tests, non-interactive setups).
func SetKeyFilePassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetKeyFilePasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetKeyFilePasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
