package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"quill/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "quill-api"
	tokenAudience = "quill-client"
)

// Claims are the verified contents of a session token.
type Claims struct {
	Identity
	JTI       string
	ExpiresAt time.Time
}

// Issuer creates and verifies signed session tokens. Role changes after
// issuance are not reflected until re-login; Verify never re-checks the
// database.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer signing tokens with the given HMAC secret and
// token lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a signed token embedding the user's id and role.
func (i *Issuer) Issue(user *models.User) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := i.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(i.ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  i.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string and returns its claims.
// Any malformed, badly signed or expired token yields an Unauthenticated error.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, models.NewUnauthenticatedError("Invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid token claims")
	}

	if issuer, issuerOk := mapClaims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, models.NewUnauthenticatedError("Invalid token issuer")
	}
	if audience, audienceOk := mapClaims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, models.NewUnauthenticatedError("Invalid token audience")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthenticatedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	roleStr, ok := mapClaims["role"].(string)
	role := models.Role(roleStr)
	if !ok || !role.Valid() {
		return nil, models.NewUnauthenticatedError("Invalid role claim")
	}

	claims := &Claims{
		Identity: Identity{UserID: uint(userID), Role: role},
	}
	if jti, jtiOk := mapClaims["jti"].(string); jtiOk {
		claims.JTI = jti
	}
	if exp, expOk := mapClaims["exp"].(float64); expOk {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked.
func (i *Issuer) generateJTI() string {
	return fmt.Sprintf("%d-%s", i.now().Unix(), uuid.New().String()[:8])
}
