// SPDX-License-Identifier: Apache-2.0

package main

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/config"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/logging"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/tool"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Starts an MCP server over stdin/stdout exposing the classify_text and
lookup_digest tools. Logs go to stderr. Once --max-sessions sessions exist,
starting a new one drops the least recently used session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			srv := tool.NewServer(eng, version, tool.WithMaxSessions(a.cfg.MaxSessions))
			logging.New("mcp").Info("starting assetclass MCP server over stdio")
			return srv.MCPServer.Run(cmd.Context(), &sdkmcp.StdioTransport{})
		},
	}
	cmd.Flags().Int("max-sessions", 0, "maximum number of live MCP sessions")
	_ = a.v.BindPFlag(config.KeyMaxSessions, cmd.Flags().Lookup("max-sessions"))
	return cmd
}
