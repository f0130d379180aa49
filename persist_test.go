package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	d, a, b := twoComponentDiagram()
	zone := d.AddNode(0, 400, KindBoundary, "dmz")
	fid := d.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})
	d.FlowByID(fid).Label = "queries"

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, d.SaveToFile(path))

	loaded := NewDiagram()
	require.NoError(t, loaded.LoadFromFile(path))

	require.Len(t, loaded.Nodes(), 3)
	require.Len(t, loaded.Flows(), 1)

	na := loaded.NodeByID(a)
	require.NotNil(t, na)
	assert.Equal(t, "web", na.Label)
	assert.Equal(t, KindComponent, na.Kind)

	nz := loaded.NodeByID(zone)
	require.NotNil(t, nz)
	assert.Equal(t, KindBoundary, nz.Kind)
	assert.Equal(t, boundaryWidth, nz.Width)

	f := loaded.FlowByID(fid)
	require.NotNil(t, f)
	assert.Equal(t, a, f.Source)
	assert.Equal(t, b, f.Target)
	assert.Equal(t, HandleRight2, f.SourceHandle)
	assert.Equal(t, "queries", f.Label)
}

func TestLoadSkipsDanglingFlows(t *testing.T) {
	doc := `version: 1
nodes:
  - id: a
    kind: component
    x: 0
    y: 0
    width: 160
    height: 80
flows:
  - id: f1
    source: a
    target: missing
    sourceHandle: right-2
    targetHandle: left-2
`
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	d := NewDiagram()
	require.NoError(t, d.LoadFromFile(path))
	assert.Len(t, d.Nodes(), 1)
	assert.Empty(t, d.Flows())
}

func TestLoadRepairsInvalidFields(t *testing.T) {
	doc := `version: 1
nodes:
  - id: a
    kind: component
    x: 0
    y: 0
  - id: b
    kind: boundary
    x: 500
    y: 0
flows:
  - id: f1
    source: a
    target: b
    sourceHandle: nonsense
    targetHandle: left-2
`
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	d := NewDiagram()
	require.NoError(t, d.LoadFromFile(path))

	// Zero sizes fall back to the kind's defaults.
	assert.Equal(t, componentWidth, d.NodeByID("a").Width)
	assert.Equal(t, boundaryHeight, d.NodeByID("b").Height)

	f := d.FlowByID("f1")
	require.NotNil(t, f)
	assert.Equal(t, handleRing[0], f.SourceHandle)
	assert.Equal(t, HandleLeft2, f.TargetHandle)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	doc := "version: 99\nnodes: []\nflows: []\n"
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	d := NewDiagram()
	assert.Error(t, d.LoadFromFile(path))
}

func TestLoadReplacesContents(t *testing.T) {
	d, _, _ := twoComponentDiagram()
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, NewDiagram().SaveToFile(path))

	require.NoError(t, d.LoadFromFile(path))
	assert.Empty(t, d.Nodes())
	assert.Empty(t, d.Flows())
}

func TestLoadMissingFile(t *testing.T) {
	d := NewDiagram()
	assert.Error(t, d.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestGetSavePath(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "tm.yaml", c.GetSavePath("tm.yaml"))

	dir := t.TempDir()
	c.SaveDirectory = filepath.Join(dir, "diagrams")
	got := c.GetSavePath("tm.yaml")
	assert.Equal(t, filepath.Join(dir, "diagrams", "tm.yaml"), got)
	info, err := os.Stat(c.SaveDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
