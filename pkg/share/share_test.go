package share

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	s := diagram.NewState(diagram.LeftToRight, "dark")
	a := s.AddNode("übergang → fertig", diagram.Position{X: 24, Y: 24})
	b := s.AddNode("日本語", diagram.Position{X: 224, Y: 24})
	e, _ := s.Connect(a.ID, b.ID)
	e.TargetSide = diagram.SideLeft

	token, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q contains non-URL-safe characters", token)
	}

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Direction != diagram.LeftToRight || got.Theme != "dark" {
		t.Errorf("view settings = %q %q", got.Direction, got.Theme)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].Label != "übergang → fertig" || got.Nodes[1].Label != "日本語" {
		t.Errorf("labels did not survive: %q, %q", got.Nodes[0].Label, got.Nodes[1].Label)
	}
	if got.Edges[0].TargetSide != diagram.SideLeft {
		t.Errorf("TargetSide = %q, want left", got.Edges[0].TargetSide)
	}
}

func TestDecode_CountersSeeded(t *testing.T) {
	s := diagram.NewState(diagram.TopToBottom, "light")
	s.AddNode("a", diagram.Position{})
	s.AddNode("b", diagram.Position{})
	token, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n := got.AddNode("fresh", diagram.Position{}); n.ID != "n3" {
		t.Errorf("fresh node ID = %s, want n3", n.ID)
	}
}

func TestDecode_AcceptsPaddedAndStandardAlphabet(t *testing.T) {
	s := diagram.NewState(diagram.TopToBottom, "light")
	// Enough bytes to force '+' or '/' in the standard encoding somewhere;
	// labels with >0x3e byte patterns make it likely, but correctness does
	// not depend on it.
	s.AddNode("???>>>???~~~", diagram.Position{X: 1, Y: 2})
	canonical, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(canonical)
	if err != nil {
		t.Fatalf("decode canonical: %v", err)
	}

	variants := []string{
		base64.URLEncoding.EncodeToString(raw), // padded
		base64.StdEncoding.EncodeToString(raw), // standard alphabet, padded
	}
	for _, v := range variants {
		got, err := Decode(v)
		if err != nil {
			t.Errorf("Decode(%q) error = %v", v, err)
			continue
		}
		if len(got.Nodes) != 1 {
			t.Errorf("Decode(%q) = %d nodes, want 1", v, len(got.Nodes))
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "!!!not-base64!!!"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{"wrong shape", base64.RawURLEncoding.EncodeToString([]byte(`{"other": 1}`))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			if err == nil {
				t.Fatal("Decode() = nil error, want INVALID_PAYLOAD")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidPayload {
				t.Errorf("code = %v, want INVALID_PAYLOAD", code)
			}
		})
	}
}

func TestDecode_EmptyDiagramAllowed(t *testing.T) {
	// A payload with explicit empty arrays is a valid, empty diagram.
	data, _ := json.Marshal(map[string]any{
		"nodes": []any{}, "edges": []any{}, "themeName": "mono", "direction": "LR",
	})
	token := base64.RawURLEncoding.EncodeToString(data)

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got.Nodes) != 0 || got.Theme != "mono" || got.Direction != diagram.LeftToRight {
		t.Errorf("got %+v", got)
	}
}
