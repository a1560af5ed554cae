package server

import "unicode/utf8"

// Action is a viewer command decoded from terminal input.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionZoomIn
	ActionZoomOut
	ActionNextSeed
	ActionNextType
	ActionNextFractal
	ActionNextRamp
	ActionQuit
)

// parseInput converts raw bytes into viewer actions.
// Handles WASD, arrow key escape sequences, zoom, cycling keys, Q, and Ctrl-C.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, ActionUp)
			case 'B':
				actions = append(actions, ActionDown)
			case 'C':
				actions = append(actions, ActionRight)
			case 'D':
				actions = append(actions, ActionLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, ActionUp)
		case 's', 'S':
			actions = append(actions, ActionDown)
		case 'a', 'A':
			actions = append(actions, ActionLeft)
		case 'd', 'D':
			actions = append(actions, ActionRight)
		case '+', '=':
			actions = append(actions, ActionZoomIn)
		case '-', '_':
			actions = append(actions, ActionZoomOut)
		case 'n', 'N':
			actions = append(actions, ActionNextSeed)
		case 't', 'T':
			actions = append(actions, ActionNextType)
		case 'f', 'F':
			actions = append(actions, ActionNextFractal)
		case 'c', 'C':
			actions = append(actions, ActionNextRamp)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
