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

package security

import (
	"net/http"
	"strings"

	"github.com/wso2/profile-consent-service/internal/system/authn"
	"github.com/wso2/profile-consent-service/internal/system/authz"
	"github.com/wso2/profile-consent-service/internal/system/config"
	cdscontext "github.com/wso2/profile-consent-service/internal/system/context"
	"github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

// AuthnAndAuthz authenticates the bearer token of the request and checks it carries
// requiredScope. With authentication disabled every request passes as the system principal.
func AuthnAndAuthz(r *http.Request, requiredScope string) (cdscontext.Principal, error) {

	authConfig := config.GetCDSRuntime().Config.Auth
	if !authConfig.Enabled {
		return cdscontext.Principal{}, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return cdscontext.Principal{}, errors.NewClientError(
			errors.UN_AUTHORIZED.WithDescription("Missing or invalid Authorization header"), http.StatusUnauthorized)
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	claims, err := authn.ValidateAuthenticationAndReturnClaims(token, authConfig)
	if err != nil {
		log.GetLogger().Audit(log.AuditEvent{
			InitiatorID:   r.RemoteAddr,
			InitiatorType: log.InitiatorTypeUser,
			TargetID:      r.URL.Path,
			ActionID:      log.ActionAuthenticationFailure,
			TraceID:       cdscontext.GetTraceID(r.Context()),
		})
		return cdscontext.Principal{}, err
	}

	scope, err := authn.Scopes(claims)
	if err != nil || !authz.ValidatePermission(scope, requiredScope) {
		return cdscontext.Principal{}, errors.NewClientError(errors.FORBIDDEN, http.StatusForbidden)
	}

	return cdscontext.Principal{
		Subject: authn.Subject(claims),
		Scopes:  strings.Fields(scope),
	}, nil
}

// RequireScope wraps next with AuthnAndAuthz and stores the principal in the request context.
func RequireScope(requiredScope string, next http.HandlerFunc, onError func(http.ResponseWriter, *http.Request, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := AuthnAndAuthz(r, requiredScope)
		if err != nil {
			onError(w, r, err)
			return
		}
		if principal.Subject != "" {
			r = r.WithContext(cdscontext.WithPrincipal(r.Context(), principal))
		}
		next(w, r)
	}
}
