package main

import "time"

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeEditing
	ModeMove
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDeleteNode ConfirmAction = iota
	ConfirmDeleteFlow
	ConfirmQuit
	ConfirmNewDiagram
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddNode ActionType = iota
	ActionDeleteNode
	ActionConnect
	ActionDeleteFlow
	ActionReconnect
	ActionRenameNode
	ActionMoveNode
)

// Directional search. Tuned feel constants, kept verbatim: the band step and
// ceiling, the minimum primary-axis distance, and the angular window that
// widens across bands for diagonal searches.
const (
	searchBandStep    = 50.0
	searchBandMax     = 500.0
	searchMinDistance = 20.0
	diagAngleBase     = 30.0 // degrees, innermost band
	diagAngleMax      = 60.0 // degrees, outermost band
)

// Placement solver.
const (
	placementStepX   = 160.0
	placementStepY   = 90.0
	placementPadding = -10.0 // negative: this much overlap is permitted
)

// placementOffsets is the hand-ordered candidate sequence for inserting a
// new element: the target itself, then vertical displacement before
// horizontal, widening outward. 21 entries; order matters.
var placementOffsets = [21][2]float64{
	{0, 0},
	{0, 1}, {0, -1}, {0, 2}, {0, -2},
	{1, 0}, {-1, 0},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{0, 3}, {0, -3},
	{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
	{2, 0}, {-2, 0},
	{2, 1}, {-2, 1},
}

// Viewport following. The status bar sits at the bottom of the screen; the
// taller authoring overlay sits at the top during connection protocols.
const (
	viewportPadding         = 40.0
	statusOverlayHeight     = 60.0
	panBiasY                = 40.0 // keeps the element clear of the status bar
	authoringOverlayHeight  = 180.0
	authoringCenterFraction = 0.40
)

// Selection navigation.
const (
	navTickInterval = 16 * time.Millisecond
	navTickCount    = 2 // chords merge across two ticks
	editExitHold    = 100 * time.Millisecond
	panAnimFrames   = 8
	panAnimInterval = 16 * time.Millisecond
)

// Default element sizes and movement step in flow space.
const (
	componentWidth  = 160.0
	componentHeight = 80.0
	boundaryWidth   = 360.0
	boundaryHeight  = 220.0
	moveStep        = 10.0
	moveStepFast    = 40.0
)
