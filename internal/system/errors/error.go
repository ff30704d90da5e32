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

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
	TraceID     string `json:"trace_id,omitempty"`
}

// WithDescription returns a copy of the message carrying description.
func (m ErrorMessage) WithDescription(description string) ErrorMessage {
	m.Description = description
	return m
}

type ClientError struct {
	ErrorMessage
	StatusCode int
}

type ServerError struct {
	ErrorMessage
	Err error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewServerError(msg ErrorMessage, cause error) *ServerError {
	return &ServerError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewClientError(msg ErrorMessage, code int) *ClientError {
	return &ClientError{
		ErrorMessage: msg,
		StatusCode:   code,
	}
}

// NotFound builds a 404 client error.
func NotFound(msg ErrorMessage, description string) *ClientError {
	return NewClientError(msg.WithDescription(description), http.StatusNotFound)
}

// BadRequest builds a 400 client error.
func BadRequest(msg ErrorMessage, description string) *ClientError {
	return NewClientError(msg.WithDescription(description), http.StatusBadRequest)
}

// StatusCode returns the HTTP status a client error maps to, or 500 for anything else.
func StatusCode(err error) int {
	var clientError *ClientError
	if errors.As(err, &clientError) {
		return clientError.StatusCode
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err is a client or server error carrying msg's code.
func HasCode(err error, msg ErrorMessage) bool {
	var clientError *ClientError
	if errors.As(err, &clientError) {
		return clientError.Code == msg.Code
	}
	var serverError *ServerError
	if errors.As(err, &serverError) {
		return serverError.Code == msg.Code
	}
	return false
}
