// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the classifier as MCP tools.
package tool

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jestin-george-sclera/asset-classification-patterns/internal/engine"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/logging"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/ocrtext"
	"github.com/jestin-george-sclera/asset-classification-patterns/internal/pseudonym"
)

// DefaultMaxSessions is the number of sessions kept before the least
// recently used one is dropped along with its registry.
const DefaultMaxSessions = 1024

// Server wraps the MCP SDK server and owns the classification sessions. Each
// session has its own digest registry.
type Server struct {
	MCPServer *mcp.Server

	engine *engine.Engine
	ocr    *ocrtext.Pipeline
	log    *slog.Logger

	maxSessions int
	sessions    *lru.Cache[string, *pseudonym.Registry]
}

// Option configures a Server.
type Option func(*Server)

// WithMaxSessions bounds the number of live sessions. Values below 1 keep the
// default.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewServer creates an MCP server with the classifier tools registered.
func NewServer(e *engine.Engine, version string, opts ...Option) *Server {
	s := &Server{
		MCPServer:   mcp.NewServer(&mcp.Implementation{Name: "assetclass", Version: version}, nil),
		engine:      e,
		ocr:         ocrtext.DefaultPipeline(),
		log:         logging.New("mcp"),
		maxSessions: DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Size is always positive here, so NewWithEvict cannot fail.
	s.sessions, _ = lru.NewWithEvict(s.maxSessions, func(id string, reg *pseudonym.Registry) {
		s.log.Info("session evicted", "session_id", id, "digests", reg.Len())
	})

	mcp.AddTool(s.MCPServer, MetadataClassifyText, s.ClassifyText)
	mcp.AddTool(s.MCPServer, MetadataLookupDigest, s.LookupDigest)
	return s
}

// session returns the registry for id, creating a new session when id is
// empty.
func (s *Server) session(id string) (string, *pseudonym.Registry, error) {
	if id == "" {
		id = uuid.NewString()
		reg := pseudonym.NewRegistry()
		s.sessions.Add(id, reg)
		s.log.Info("session started", "session_id", id)
		return id, reg, nil
	}
	reg, ok := s.sessions.Get(id)
	if !ok {
		return "", nil, fmt.Errorf("unknown session %q", id)
	}
	return id, reg, nil
}
