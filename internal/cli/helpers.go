package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flowpad/flowpad/pkg/config"
	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/export"
	"github.com/flowpad/flowpad/pkg/layout"
)

// engineFromConfig builds the layered engine with the configured metrics.
func engineFromConfig(cfg config.Config) *layout.Layered {
	eng := layout.NewLayered()
	if cfg.Layout.NodeWidth > 0 {
		eng.Metrics.NodeWidth = cfg.Layout.NodeWidth
	}
	if cfg.Layout.NodeHeight > 0 {
		eng.Metrics.NodeHeight = cfg.Layout.NodeHeight
	}
	if cfg.Layout.RankGap > 0 {
		eng.Metrics.RankGap = cfg.Layout.RankGap
	}
	if cfg.Layout.NodeGap > 0 {
		eng.Metrics.NodeGap = cfg.Layout.NodeGap
	}
	return eng
}

// readInput reads raw text from a file path, or stdin when path is "-" or
// empty.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// readDiagram loads an interchange JSON file into a state with the given
// view settings.
func readDiagram(path string, dir diagram.Direction, theme string) (*diagram.State, error) {
	nodes, edges, err := export.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return diagram.FromGraph(nodes, edges, dir, theme), nil
}

// writeOutput writes data to path, or stdout when path is "-" or empty.
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseDirection maps the user-facing direction flag to the enum.
func parseDirection(s string) (diagram.Direction, error) {
	switch strings.ToUpper(s) {
	case "", "TB", "TOP-TO-BOTTOM":
		return diagram.TopToBottom, nil
	case "LR", "LEFT-TO-RIGHT":
		return diagram.LeftToRight, nil
	default:
		return "", fmt.Errorf("invalid direction %q (must be TB or LR)", s)
	}
}
