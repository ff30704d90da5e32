/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package authn

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/profile-consent-service/internal/system/config"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

// ScopeClaim holds the space separated scopes granted to the token.
const ScopeClaim = "scope"

// ValidateAuthenticationAndReturnClaims verifies an HS256 signed bearer token against the
// configured secret, audience and issuer, and returns its claims.
func ValidateAuthenticationAndReturnClaims(token string, authConfig config.AuthConfig) (jwt.MapClaims, error) {

	logger := log.GetLogger()
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if authConfig.Audience != "" {
		options = append(options, jwt.WithAudience(authConfig.Audience))
	}
	if authConfig.Issuer != "" {
		options = append(options, jwt.WithIssuer(authConfig.Issuer))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(authConfig.JWTSecret), nil
	}, options...)
	if err != nil {
		logger.Debug("Bearer token validation failed.", log.Error(err))
		return nil, unauthorizedError("Missing or invalid Authorization header")
	}
	if !parsed.Valid {
		return nil, unauthorizedError("Invalid token")
	}
	return claims, nil
}

// Subject returns the sub claim, or an empty string when the token carries none.
func Subject(claims jwt.MapClaims) string {
	subject, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}

// Scopes returns the scope claim.
func Scopes(claims jwt.MapClaims) (string, error) {
	raw, ok := claims[ScopeClaim]
	if !ok || raw == nil {
		return "", nil
	}
	scope, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("scope claim has type %T", raw)
	}
	return scope, nil
}

func unauthorizedError(description string) error {
	return errors2.NewClientError(errors2.UN_AUTHORIZED.WithDescription(description), http.StatusUnauthorized)
}
