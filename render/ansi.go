package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// HalfBlock draws the top pixel as foreground and the bottom as background,
	// giving two square-ish pixels per terminal cell.
	HalfBlock = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// WriteHalfBlock writes one cell showing top over bottom.
// Uses combined SGR to avoid state leakage between cells.
func WriteHalfBlock(sb *strings.Builder, top, bottom color.RGBA) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(top.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(top.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(top.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(bottom.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bottom.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bottom.B)))
	sb.WriteByte('m')
	sb.WriteRune(HalfBlock)
}

// WriteField renders a row-major width x height field as height/2 terminal
// rows of half blocks from the top-left corner. An odd last row is paired with
// itself.
func WriteField(sb *strings.Builder, values []float64, width, height int, ramp Ramp) {
	for y := 0; y < height; y += 2 {
		sb.WriteString(MoveTo(y/2+1, 1))
		below := y + 1
		if below >= height {
			below = y
		}
		for x := 0; x < width; x++ {
			WriteHalfBlock(sb, ramp.Value(values[width*y+x]), ramp.Value(values[width*below+x]))
		}
		sb.WriteString(Reset)
	}
}
