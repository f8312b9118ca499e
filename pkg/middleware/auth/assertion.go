package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

func (m *Middleware) validateAssertion(raw string) (Principal, error) {
	pub := m.getKey()
	if pub == nil {
		return Principal{}, errors.New("assertion key not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(m.assertLeeway),
	)

	var claims struct {
		jwt.RegisteredClaims
		UID  string   `json:"uid"`
		Caps []string `json:"caps"`
	}

	tok, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return pub, nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, errors.New("invalid assertion")
	}

	if m.assertIssuer != "" && claims.Issuer != m.assertIssuer {
		return Principal{}, errors.New("bad issuer")
	}
	if m.assertAudience != "" {
		found := false
		for _, a := range claims.Audience {
			if a == m.assertAudience {
				found = true
				break
			}
		}
		if !found {
			return Principal{}, errors.New("bad audience")
		}
	}

	subject := claims.UID
	if subject == "" {
		subject = claims.Subject
	}
	if subject == "" {
		return Principal{}, errors.New("missing uid")
	}

	return Principal{
		Subject:      subject,
		Capabilities: claims.Caps,
		Provider:     "assert",
	}, nil
}
