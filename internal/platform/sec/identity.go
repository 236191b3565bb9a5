// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the external identity established by the auth provider.
//
// The Subject is the provider's stable account identifier and becomes the
// profile's primary key; this system never mints its own user identities.
type Identity struct {
	Subject     string
	DisplayName string
}

// identityClaims is the expected shape of a provider-issued identity token.
type identityClaims struct {
	jwt.RegisteredClaims

	Name string `json:"name"`
}

// IdentityService verifies RS256-signed identity tokens minted by the
// external auth provider after the user's interactive sign-in.
//
// # Trust Model
//
// The provider's public key, issuer, and audience are pinned at startup.
// A token that fails any of those checks is rejected outright; there is no
// fallback verification path.
type IdentityService struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

// NewIdentityService loads the provider public key and pins issuer/audience.
func NewIdentityService(publicKeyPath, issuer, audience string) (*IdentityService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read identity provider key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse identity provider key: %w", err)
	}

	return &IdentityService{
		publicKey: publicKey,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

// VerifyIdentityToken validates a provider token and extracts the identity.
func (service *IdentityService) VerifyIdentityToken(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &identityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.publicKey, nil
		},
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid identity token: %w", err)
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("sec: invalid identity token claims")
	}

	return &Identity{
		Subject:     claims.Subject,
		DisplayName: claims.Name,
	}, nil
}
