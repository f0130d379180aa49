package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"
)

// clipNode is the clipboard payload for a copied node: the node itself
// without its id, so pasting always mints a fresh element.
type clipNode struct {
	Kind   string  `yaml:"kind"`
	Label  string  `yaml:"label,omitempty"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// copyNodeToClipboard serializes the node as YAML onto the system
// clipboard.
func copyNodeToClipboard(n *Node) error {
	payload := clipNode{
		Kind:   n.Kind.String(),
		Label:  n.Label,
		Width:  n.Width,
		Height: n.Height,
	}
	data, err := yaml.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("encode node: %w", err)
	}
	return clipboard.WriteAll(string(data))
}

// pasteNodeFromClipboard reads a node payload off the clipboard and places
// it near the given flow-space point via the placement solver. Returns the
// new node's id.
func pasteNodeFromClipboard(d *Diagram, x, y float64) (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}

	var payload clipNode
	if err := yaml.Unmarshal([]byte(text), &payload); err != nil {
		return "", fmt.Errorf("clipboard does not hold a node: %w", err)
	}
	if payload.Kind == "" {
		return "", fmt.Errorf("clipboard does not hold a node")
	}

	kind := KindComponent
	if payload.Kind == KindBoundary.String() {
		kind = KindBoundary
	}
	id := d.AddNode(x, y, kind, payload.Label)
	if n := d.NodeByID(id); n != nil && payload.Width > 0 && payload.Height > 0 {
		n.Width = payload.Width
		n.Height = payload.Height
	}
	return id, nil
}
