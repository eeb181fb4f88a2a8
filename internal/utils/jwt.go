package utils // package utils provides token issuing, verification and hashing helpers

import (
	"crypto/sha256" // SHA-256 hashing for refresh tokens at rest
	"encoding/hex"  // hex encoding of digests
	"errors"        // sentinel token errors
	"time"          // expiry calculations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Token verification failures form a closed set.  ErrTokenExpired is
// reported only for structurally valid tokens whose exp has passed; every
// other defect (bad signature, malformed payload, wrong algorithm, wrong
// type claim) collapses into ErrTokenInvalid so callers never learn why a
// forged token was rejected.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the principal snapshot embedded in an access token.  The role
// is fixed at issuance time; requests are authorized against this snapshot
// without re-reading the user record.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived, stateless bearer credentials; validity is
// determined entirely by signature and expiry at verification time.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long-lived signed token used to obtain new
// access tokens.  The raw string doubles as the logical key of the
// persisted refresh session; only its SHA-256 digest is stored.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT carrying the principal
// snapshot {sub, email, role} plus standard exp/iat claims.  ttlMin is the
// lifetime in minutes.
func NewAccessToken(secret, userID, email, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs an HS256 JWT carrying {sub, type:
// "refresh"} plus exp/iat.  ttlDays is the lifetime in days.  The type
// claim prevents an access token from being replayed as a refresh token.
func NewRefreshToken(secret, userID string, ttlDays int) (RefreshToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": "refresh",
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry and returns the embedded
// principal snapshot.  Verification is pure: no store access, so the
// per-request authentication gate never costs a persistence round trip.
func ParseAccessToken(secret, raw string) (Claims, error) {
	mc, err := parseHS256(secret, raw)
	if err != nil {
		return Claims{}, err
	}
	c := Claims{
		UserID: stringClaim(mc, "sub"),
		Email:  stringClaim(mc, "email"),
		Role:   stringClaim(mc, "role"),
	}
	if c.UserID == "" || c.Role == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

// ParseRefreshToken verifies signature, expiry and the refresh type claim
// and returns the subject user ID.
func ParseRefreshToken(secret, raw string) (string, error) {
	mc, err := parseHS256(secret, raw)
	if err != nil {
		return "", err
	}
	if stringClaim(mc, "type") != "refresh" {
		return "", ErrTokenInvalid
	}
	sub := stringClaim(mc, "sub")
	if sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}

// parseHS256 parses a token, enforcing the HMAC signing method, and maps
// library errors onto the closed sentinel set.
func parseHS256(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with a different algorithm family.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return mc, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key].(string); ok {
		return v
	}
	return ""
}

// HashToken returns the SHA-256 hash of a raw refresh token as a hex
// string.  Storing only the hash prevents attackers from using stolen
// database rows to refresh sessions.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
