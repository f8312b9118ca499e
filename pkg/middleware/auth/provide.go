package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProvideAuthentication wires defaults and env config:
//
//	SESSION_COOKIE_NAME        = cookie carrying the assertion (default "assert")
//	ASSERTION_KEY_FILE         = PEM file with the RS256 public key
//	ASSERTION_ISSUER           = expected iss (optional)
//	ASSERTION_AUDIENCE         = expected aud (optional)
//	ASSERTION_LEEWAY_SECONDS   = clock skew allowance (default 60)
//	AUTH_DEV_BYPASS            = "true" injects a dev principal on every request
//	AUTH_DEV_CAPABILITIES      = comma-separated caps for the dev principal
//
// A missing key file is non-fatal: requests simply stay unauthenticated.
func ProvideAuthentication() *Middleware {
	leeway := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("ASSERTION_LEEWAY_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			leeway = time.Duration(n) * time.Second
		}
	}

	cookie := strings.TrimSpace(os.Getenv("SESSION_COOKIE_NAME"))
	if cookie == "" {
		cookie = "assert"
	}

	m := &Middleware{
		cookieName:     cookie,
		devBypass:      os.Getenv("AUTH_DEV_BYPASS") == "true",
		devCaps:        splitCaps(os.Getenv("AUTH_DEV_CAPABILITIES")),
		assertIssuer:   strings.TrimSpace(os.Getenv("ASSERTION_ISSUER")),
		assertAudience: strings.TrimSpace(os.Getenv("ASSERTION_AUDIENCE")),
		assertLeeway:   leeway,
	}

	if path := strings.TrimSpace(os.Getenv("ASSERTION_KEY_FILE")); path != "" {
		if key, err := loadPublicKey(path); err == nil {
			m.SetAssertionKey(key)
		}
	}
	return m
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("no PEM block")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rpub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return rpub, nil
}

func splitCaps(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
