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
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/profile-consent-service/internal/system/config"
	errors2 "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	os.Exit(m.Run())
}

var authConfig = config.AuthConfig{
	Enabled:   true,
	JWTSecret: "secret",
	Audience:  "cds",
	Issuer:    "https://issuer.example",
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "alice",
		"aud":   "cds",
		"iss":   "https://issuer.example",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"scope": "profile:view consent:view",
	}
}

func TestValidateAuthenticationAndReturnClaims(t *testing.T) {
	claims, err := ValidateAuthenticationAndReturnClaims(sign(t, jwt.SigningMethodHS256, []byte("secret"), validClaims()), authConfig)
	require.NoError(t, err)
	assert.Equal(t, "alice", Subject(claims))

	scope, err := Scopes(claims)
	require.NoError(t, err)
	assert.Equal(t, "profile:view consent:view", scope)
}

func TestValidateAuthenticationRejects(t *testing.T) {
	withClaim := func(key string, value interface{}) jwt.MapClaims {
		claims := validClaims()
		if value == nil {
			delete(claims, key)
		} else {
			claims[key] = value
		}
		return claims
	}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte("secret"), withClaim("exp", time.Now().Add(-time.Minute).Unix()))},
		{"no expiry", sign(t, jwt.SigningMethodHS256, []byte("secret"), withClaim("exp", nil))},
		{"wrong audience", sign(t, jwt.SigningMethodHS256, []byte("secret"), withClaim("aud", "someone-else"))},
		{"wrong issuer", sign(t, jwt.SigningMethodHS256, []byte("secret"), withClaim("iss", "https://evil.example"))},
		{"other algorithm", sign(t, jwt.SigningMethodHS512, []byte("secret"), validClaims())},
		{"not a token", "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAuthenticationAndReturnClaims(tt.token, authConfig)
			require.Error(t, err)
			var clientError *errors2.ClientError
			require.True(t, errors.As(err, &clientError))
			assert.Equal(t, http.StatusUnauthorized, clientError.StatusCode)
		})
	}
}

func TestScopes(t *testing.T) {
	scope, err := Scopes(jwt.MapClaims{})
	require.NoError(t, err)
	assert.Empty(t, scope)

	_, err = Scopes(jwt.MapClaims{ScopeClaim: []interface{}{"profile:view"}})
	assert.Error(t, err)

	assert.Empty(t, Subject(jwt.MapClaims{}))
}
