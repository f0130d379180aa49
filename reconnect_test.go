package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowFixture(t *testing.T) (*Diagram, string, string, string) {
	t.Helper()
	d, a, b := twoComponentDiagram()
	fid := d.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})
	require.NotEmpty(t, fid)
	return d, a, b, fid
}

func TestReconnectAcceptDefaultsIsIdentity(t *testing.T) {
	d, a, b, fid := flowFixture(t)
	var r reconnectMachine
	require.True(t, r.start(d, fid))

	// Four confirmations straight through re-commit the existing endpoints.
	assert.Nil(t, r.confirm(d))
	assert.Nil(t, r.confirm(d))
	assert.Nil(t, r.confirm(d))
	req := r.confirm(d)
	require.NotNil(t, req)

	assert.Equal(t, fid, req.FlowID)
	assert.Equal(t, a, req.Source)
	assert.Equal(t, b, req.Target)
	assert.Equal(t, HandleRight2, req.SourceHandle)
	assert.Equal(t, HandleLeft2, req.TargetHandle)
	assert.False(t, r.active())
}

func TestReconnectSeedsFromCurrentEndpoints(t *testing.T) {
	d, a, b, fid := flowFixture(t)
	var r reconnectMachine
	require.True(t, r.start(d, fid))

	assert.Equal(t, a, r.focusedNode)
	assert.True(t, d.NodeByID(a).PendingTarget)

	r.confirm(d)
	assert.Equal(t, HandleRight2, r.focusedHandle, "handle focus seeds from the flow, not the ring start")

	r.confirm(d)
	assert.Equal(t, b, r.focusedNode)

	r.confirm(d)
	assert.Equal(t, HandleLeft2, r.focusedHandle)
}

func TestReconnectExcludesOtherEndpoint(t *testing.T) {
	d, a, b, fid := flowFixture(t)
	// C sits beyond B; B is the flow's target and must be skipped while
	// picking a new source, so the search lands on C.
	c := d.AddNode(800, 0, KindComponent, "cache")

	var r reconnectMachine
	require.True(t, r.start(d, fid))

	hit := r.moveNodeFocus(d, DirRight)
	require.NotNil(t, hit)
	assert.Equal(t, c, hit.ID)

	// Confirm C as the new source; now picking the target must skip C.
	r.confirm(d)
	r.confirm(d)
	assert.Equal(t, reconnectTargetNode, r.phase)
	assert.Equal(t, b, r.focusedNode)

	hit = r.moveNodeFocus(d, DirLeft)
	require.NotNil(t, hit)
	assert.Equal(t, a, hit.ID)
}

func TestReconnectTargetNodeAllowsAnyKind(t *testing.T) {
	d, _, _, fid := flowFixture(t)
	zone := d.AddNode(0, 400, KindBoundary, "zone")

	var r reconnectMachine
	require.True(t, r.start(d, fid))

	hit := r.moveNodeFocus(d, DirDown)
	require.NotNil(t, hit)
	assert.Equal(t, zone, hit.ID)
}

func TestReconnectNewSourceResetsHandleSeed(t *testing.T) {
	d, _, _, fid := flowFixture(t)
	d.AddNode(800, 0, KindComponent, "cache")

	var r reconnectMachine
	require.True(t, r.start(d, fid))
	require.NotNil(t, r.moveNodeFocus(d, DirRight))
	r.confirm(d)

	// The flow's stored source handle belongs to the old node.
	assert.Equal(t, handleRing[0], r.focusedHandle)
}

func TestReconnectBackRestoresFocus(t *testing.T) {
	d, a, b, fid := flowFixture(t)
	var r reconnectMachine
	require.True(t, r.start(d, fid))
	r.confirm(d)
	r.cycleHandle(d, DirRight)
	assert.Equal(t, reconnectSourceHandle, r.phase)

	r.back(d)
	assert.Equal(t, reconnectSourceNode, r.phase)
	assert.Equal(t, a, r.focusedNode)
	assert.True(t, d.NodeByID(a).PendingTarget)

	r.confirm(d)
	r.confirm(d)
	r.confirm(d)
	assert.Equal(t, reconnectTargetHandle, r.phase)
	r.back(d)
	assert.Equal(t, reconnectTargetNode, r.phase)
	assert.Equal(t, b, r.focusedNode)

	r.back(d)
	r.back(d)
	r.back(d)
	assert.False(t, r.active())
}

func TestReconnectDanglingFlowAborts(t *testing.T) {
	d, _, _, fid := flowFixture(t)
	var r reconnectMachine
	require.True(t, r.start(d, fid))
	r.confirm(d)

	d.DeleteFlow(fid)
	assert.Nil(t, r.confirm(d))
	assert.False(t, r.active())
}

func TestReconnectDeletedNodeAborts(t *testing.T) {
	d, a, b, fid := flowFixture(t)
	c := d.AddNode(800, 0, KindComponent, "cache")

	var r reconnectMachine
	require.True(t, r.start(d, fid))
	require.NotNil(t, r.moveNodeFocus(d, DirRight))
	r.confirm(d) // source = c
	r.confirm(d)

	// Deleting the new source mid-protocol cascades nothing onto the flow
	// (it still points a->b) but the machine's state is now dangling.
	d.DeleteNode(c)
	assert.Nil(t, r.confirm(d))
	assert.False(t, r.active())

	f := d.FlowByID(fid)
	require.NotNil(t, f)
	assert.Equal(t, a, f.Source)
	assert.Equal(t, b, f.Target)
}

func TestReconnectStartGuards(t *testing.T) {
	d, _, b, fid := flowFixture(t)
	var r reconnectMachine
	assert.False(t, r.start(d, "missing"))

	d.DeleteNode(b) // cascade removes the flow
	assert.False(t, r.start(d, fid))
}
