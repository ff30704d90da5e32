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

package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	cdscontext "github.com/wso2/profile-consent-service/internal/system/context"
	customerrors "github.com/wso2/profile-consent-service/internal/system/errors"
	"github.com/wso2/profile-consent-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error. Server errors are
// logged and rendered without their cause.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {

	traceID := cdscontext.GetTraceID(r.Context())
	var clientError *customerrors.ClientError
	if ok := errors.As(err, &clientError); ok {
		body := clientError.ErrorMessage
		body.TraceID = traceID
		WriteJSON(w, clientError.StatusCode, body)
		return
	}

	logger := log.GetLogger()
	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger.Error(err.Error(), log.TraceID(r.Context()))
		body := serverError.ErrorMessage
		body.TraceID = traceID
		WriteJSON(w, http.StatusInternalServerError, body)
		return
	}

	logger.Error("Unexpected error while serving request", log.Error(err), log.TraceID(r.Context()))
	WriteJSON(w, http.StatusInternalServerError, customerrors.ErrorMessage{
		Code:    "CDS-15000",
		Message: "Internal server error",
		TraceID: traceID,
	})
}

// WriteJSON writes body as the JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.GetLogger().Error("Failed to encode response body", log.Error(err))
	}
}

// DecodeJSON decodes the request body into target. Decoding failures are reported as a
// bad request describing the problem.
func DecodeJSON(r *http.Request, target interface{}, resourceName string) error {

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return customerrors.BadRequest(customerrors.BAD_REQUEST, HandleDecodeError(err, resourceName))
	}
	return nil
}
