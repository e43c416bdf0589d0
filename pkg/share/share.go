// Package share encodes a whole diagram (nodes, edges, theme, direction)
// into a URL-safe token for share links, and decodes it back.
//
// The token is the JSON tuple serialized as UTF-8 and base64-encoded with
// the URL-safe alphabet, padding stripped. Decoding is liberal: it also
// accepts padded tokens and tokens produced with the standard alphabet
// ('+' and '/'), since links get copied through channels that rewrite
// them. Malformed tokens yield an error; callers ignore it silently and
// keep whatever state was previously loaded.
package share

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/errors"
)

// payload is the share-link tuple. Unlike the file-export format it
// carries the view settings, so an opened link reproduces the full look.
type payload struct {
	Nodes     []diagram.Node    `json:"nodes"`
	Edges     []diagram.Edge    `json:"edges"`
	Theme     string            `json:"themeName"`
	Direction diagram.Direction `json:"direction"`
}

// Encode serializes the state into a URL-safe token suitable for a single
// query parameter.
func Encode(s *diagram.State) (string, error) {
	data, err := json.Marshal(payload{
		Nodes:     s.Nodes,
		Edges:     s.Edges,
		Theme:     s.Theme,
		Direction: s.Direction,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "marshal share payload")
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. The returned state has its ID counters seeded
// past the decoded IDs, so editing can continue without collisions.
func Decode(token string) (*diagram.State, error) {
	data, err := base64.RawURLEncoding.DecodeString(normalizeToken(token))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode share token")
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "unmarshal share payload")
	}
	if p.Nodes == nil && p.Edges == nil {
		return nil, errors.New(errors.ErrCodeInvalidPayload, "share payload carries no diagram")
	}
	return diagram.FromGraph(p.Nodes, p.Edges, p.Direction, p.Theme), nil
}

// normalizeToken maps standard-alphabet characters to their URL-safe
// equivalents and strips padding, so all historical token shapes decode.
func normalizeToken(token string) string {
	token = strings.ReplaceAll(token, "+", "-")
	token = strings.ReplaceAll(token, "/", "_")
	return strings.TrimRight(token, "=")
}
