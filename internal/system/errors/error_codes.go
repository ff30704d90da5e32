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

const errorPrefix = "CDS-"

var (
	// Server error codes

	ADD_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while adding the profile.",
	}

	GET_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching the profile.",
	}

	UPDATE_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while updating the profile.",
	}

	DELETE_PROFILE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while deleting the profile.",
	}

	FILTER_PROFILES = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while filtering profiles.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Profile lock acquisition failed.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while marshalling JSON.",
	}

	STORED_CONSENT_CORRUPT = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Stored consent could not be read.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "The access token does not carry the scope required for this operation.",
	}

	PROFILE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Profile not found.",
		Description: "No user profile record found for the given profile_id",
	}

	PROFILE_ALREADY_EXISTS = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Profile already exists.",
	}

	CONSENT_FORMAT = ErrorMessage{
		Code:    errorPrefix + "11020",
		Message: "Invalid consent.",
	}

	CONSENT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11021",
		Message: "Consent not found.",
	}

	CONSENT_INVALID_STATE = ErrorMessage{
		Code:    errorPrefix + "11022",
		Message: "Consent validity cannot be evaluated.",
	}

	INVALID_MERGE_TARGET = ErrorMessage{
		Code:    errorPrefix + "11024",
		Message: "Invalid merge target.",
	}
)
