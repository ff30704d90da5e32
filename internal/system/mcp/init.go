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

package mcp

import (
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
	"github.com/wso2/profile-consent-service/internal/system/constants"
	"github.com/wso2/profile-consent-service/internal/system/security"
	"github.com/wso2/profile-consent-service/internal/system/utils"
)

const MCPEndpointPath = "/mcp"

// Initialize registers the MCP endpoint. The tools only read, so a caller needs both
// view scopes.
func Initialize(mux *http.ServeMux, profilesProvider provider.ProfilesProviderInterface) {

	mcpServer := newServer(profilesProvider)

	// Streamable MCP over HTTP
	httpHandler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return mcpServer.getMCPServer()
	}, nil)

	protected := security.RequireScope(constants.ScopeProfileView,
		security.RequireScope(constants.ScopeConsentView, httpHandler.ServeHTTP, utils.HandleError),
		utils.HandleError)

	mux.Handle(MCPEndpointPath, protected)
	mux.Handle(MCPEndpointPath+"/", protected)
}
