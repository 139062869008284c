// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MetadataLookupDigest describes the lookup_digest tool.
var MetadataLookupDigest = &mcp.Tool{
	Name:        "lookup_digest",
	Description: "Resolve a digested equipment detail field name back to the original field name within a session.",
}

// InputLookupDigest is the input for the LookupDigest tool.
type InputLookupDigest struct {
	SessionID string `json:"session_id" jsonschema:"session returned by classify_text"`
	Digest    string `json:"digest" jsonschema:"digest key from an equipment details record"`
}

// OutputLookupDigest is the output for the LookupDigest tool.
type OutputLookupDigest struct {
	FieldName string `json:"field_name,omitempty"`
	Found     bool   `json:"found"`
}

// LookupDigest resolves a digest recorded in a session.
func (s *Server) LookupDigest(_ context.Context, _ *mcp.CallToolRequest, input InputLookupDigest) (*mcp.CallToolResult, OutputLookupDigest, error) {
	if input.SessionID == "" {
		return nil, OutputLookupDigest{}, errors.New("session_id is required")
	}
	_, reg, err := s.session(input.SessionID)
	if err != nil {
		return nil, OutputLookupDigest{}, err
	}
	name, ok := reg.Lookup(input.Digest)
	return nil, OutputLookupDigest{FieldName: name, Found: ok}, nil
}
