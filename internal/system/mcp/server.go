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
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/wso2/profile-consent-service/internal/profile/provider"
	profileTools "github.com/wso2/profile-consent-service/internal/system/mcp/tools/profile"
)

const (
	serverName    = "cds-profile-consent"
	serverVersion = "1.0.0"
)

// server holds dependencies for MCP tool registration.
type server struct {
	profilesProvider provider.ProfilesProviderInterface

	once sync.Once
	mcp  *mcpsdk.Server
}

func newServer(profilesProvider provider.ProfilesProviderInterface) *server {
	return &server{
		profilesProvider: profilesProvider,
	}
}

// getMCPServer builds (once) and returns the MCP server with the profile tools registered.
func (s *server) getMCPServer() *mcpsdk.Server {
	s.once.Do(func() {
		mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil)

		profileTools.NewTools(s.profilesProvider).RegisterTools(mcpServer)
		s.mcp = mcpServer
	})
	return s.mcp
}
