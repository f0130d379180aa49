package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// diagramDoc is the on-disk YAML shape of a diagram. Render hints never
// leave the process.
type diagramDoc struct {
	Version int       `yaml:"version"`
	Nodes   []nodeDoc `yaml:"nodes"`
	Flows   []flowDoc `yaml:"flows"`
}

type nodeDoc struct {
	ID     string  `yaml:"id"`
	Kind   string  `yaml:"kind"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type flowDoc struct {
	ID           string `yaml:"id"`
	Source       string `yaml:"source"`
	Target       string `yaml:"target"`
	SourceHandle string `yaml:"sourceHandle"`
	TargetHandle string `yaml:"targetHandle"`
	Label        string `yaml:"label,omitempty"`
}

const diagramDocVersion = 1

// SaveToFile writes the diagram as a YAML document.
func (d *Diagram) SaveToFile(filename string) error {
	doc := diagramDoc{Version: diagramDocVersion}
	for i := range d.nodes {
		n := &d.nodes[i]
		doc.Nodes = append(doc.Nodes, nodeDoc{
			ID:     n.ID,
			Kind:   n.Kind.String(),
			Label:  n.Label,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		})
	}
	for i := range d.flows {
		f := &d.flows[i]
		doc.Flows = append(doc.Flows, flowDoc{
			ID:           f.ID,
			Source:       f.Source,
			Target:       f.Target,
			SourceHandle: string(f.SourceHandle),
			TargetHandle: string(f.TargetHandle),
			Label:        f.Label,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadFromFile replaces the diagram's contents with the given YAML document.
func (d *Diagram) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var doc diagramDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid diagram file: %w", err)
	}
	if doc.Version > diagramDocVersion {
		return fmt.Errorf("diagram file version %d is newer than supported version %d", doc.Version, diagramDocVersion)
	}

	d.nodes = d.nodes[:0]
	d.flows = d.flows[:0]

	for _, nd := range doc.Nodes {
		kind := KindComponent
		if nd.Kind == KindBoundary.String() {
			kind = KindBoundary
		}
		width, height := nd.Width, nd.Height
		if width <= 0 || height <= 0 {
			width, height = componentWidth, componentHeight
			if kind == KindBoundary {
				width, height = boundaryWidth, boundaryHeight
			}
		}
		d.nodes = append(d.nodes, Node{
			ID:     nd.ID,
			X:      nd.X,
			Y:      nd.Y,
			Width:  width,
			Height: height,
			Kind:   kind,
			Label:  nd.Label,
		})
	}

	for _, fd := range doc.Flows {
		if d.NodeByID(fd.Source) == nil || d.NodeByID(fd.Target) == nil {
			continue
		}
		src := HandleID(fd.SourceHandle)
		dst := HandleID(fd.TargetHandle)
		if !validHandle(src) {
			src = handleRing[0]
		}
		if !validHandle(dst) {
			dst = handleRing[0]
		}
		d.flows = append(d.flows, Flow{
			ID:           fd.ID,
			Source:       fd.Source,
			Target:       fd.Target,
			SourceHandle: src,
			TargetHandle: dst,
			Label:        fd.Label,
		})
	}
	return nil
}
