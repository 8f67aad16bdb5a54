package alley

import (
	"fmt"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/core"
)

// Layout of the scorecard area.
const (
	cardX      = 2
	nameWidth  = 12
	frameWidth = 4 // Separator plus two ball boxes
	tenthWidth = 6 // Separator plus three ball boxes
	totalWidth = 6

	headerY = 2
	cardY   = 3
	cardH   = 3

	meterWidth = 24
	rackBoxW   = 12

	MinScreenW = cardX + nameWidth + (bowling.Frames-1)*frameWidth + tenthWidth + totalWidth + 2
	MinScreenH = 22
)

// Pin rows from the back of the deck to the head pin.
var pinRows = [][]int{{6, 7, 8, 9}, {3, 4, 5}, {1, 2}, {0}}

// Render draws the game for a local player.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.snapshot(), core.PlayerNone)
}

// RenderSnapshot draws a snapshot. viewer is the online side looking at it,
// or PlayerNone when every human shares one keyboard.
func RenderSnapshot(dst *core.Screen, snap Snapshot, viewer core.PlayerID) {
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need at least %dx%d", MinScreenW, MinScreenH), core.ColorYellow)
		return
	}

	dst.DrawTextCentered(0, "TEN-PIN BOWLING", core.ColorBrightWhite)
	drawHeader(dst, headerY)

	for i, ls := range snap.Lanes {
		drawScorecard(dst, cardY+i*cardH, ls, i == snap.Turn && !snap.GameOver)
	}

	y := cardY + len(snap.Lanes)*cardH + 1
	if len(snap.Lanes) == 0 {
		return
	}
	active := snap.Lanes[core.Clamp(snap.Turn, 0, len(snap.Lanes)-1)]

	switch {
	case snap.GameOver:
		dst.DrawTextCentered(y, "GAME OVER", core.ColorRed)
	case snap.Paused:
		dst.DrawTextCentered(y, "PAUSED", core.ColorYellow)
	default:
		status := fmt.Sprintf("Frame %d  Ball %d  %s to bowl", active.Frame, active.Ball, active.Name)
		dst.DrawTextCentered(y, status, core.ColorCyan)
	}

	cx := dst.Width() / 2
	dst.DrawBox(core.NewRect(cx-rackBoxW/2, y+1, rackBoxW, len(pinRows)+2), core.ColorGray)
	drawRack(dst, cx, y+2, active.Knocked)

	meterY := y + 2 + len(pinRows) + 1
	drawMeter(dst, meterY, snap.Power, snap.OptimalMin, snap.OptimalMax)

	if snap.Message != "" {
		dst.DrawTextCentered(meterY+2, snap.Message, core.ColorWhite)
	}

	dst.DrawTextCentered(dst.Height()-2, helpLine(snap, active, viewer), core.ColorGray)
}

func drawHeader(dst *core.Screen, y int) {
	x := cardX + nameWidth
	for f := 1; f < bowling.Frames; f++ {
		dst.DrawTextColor(x, y, fmt.Sprintf("│ %d ", f), core.ColorGray)
		x += frameWidth
	}
	dst.DrawTextColor(x, y, fmt.Sprintf("│ %2d  ", bowling.Frames), core.ColorGray)
	x += tenthWidth
	dst.DrawTextColor(x, y, "│Total│", core.ColorGray)
}

// drawScorecard draws one bowler: ball marks, running totals and a rule.
func drawScorecard(dst *core.Screen, y int, ls LaneSnapshot, active bool) {
	name := ls.Name
	if r := []rune(name); len(r) > nameWidth-3 {
		name = string(r[:nameWidth-3])
	}
	if active {
		dst.DrawTextColor(cardX, y, "▶ "+name, core.ColorCyan)
	} else {
		dst.DrawTextColor(cardX, y, "  "+name, core.ColorWhite)
	}

	marks := bowling.FrameMarks(ls.Rolls)
	totals := bowling.RunningTotals(ls.Rolls)

	x := cardX + nameWidth
	for f := range bowling.Frames {
		width := frameWidth
		if f == bowling.Frames-1 {
			width = tenthWidth
		}

		dst.DrawVLine(x, y, 2, '│', core.ColorGray)
		for b, m := range marks[f] {
			drawMark(dst, x+1+b*2, y, m)
		}
		if totals[f].Known {
			dst.DrawTextColor(x+1, y+1, fmt.Sprintf("%*d", width-1, totals[f].Score), core.ColorGreen)
		}
		x += width
	}

	dst.DrawVLine(x, y, 2, '│', core.ColorGray)
	dst.DrawTextColor(x+1, y+1, fmt.Sprintf("%*d", totalWidth-2, ls.Score), core.ColorBrightWhite)
	dst.DrawVLine(x+totalWidth-1, y, 2, '│', core.ColorGray)

	dst.DrawHLine(cardX+nameWidth, y+2, x+totalWidth-cardX-nameWidth, '─', core.ColorGray)
}

func drawMark(dst *core.Screen, x, y int, mark string) {
	switch mark {
	case "":
		return
	case bowling.MarkStrikeSymbol, bowling.MarkSpareSymbol:
		dst.DrawTextColor(x, y, mark, core.ColorYellow)
	case bowling.MarkGutterSymbol:
		dst.DrawTextColor(x, y, mark, core.ColorGray)
	default:
		dst.DrawTextColor(x, y, mark, core.ColorWhite)
	}
}

// drawRack draws the pin triangle with the head pin nearest the bowler.
func drawRack(dst *core.Screen, cx, y int, knocked [bowling.PinCount]bool) {
	for row, pins := range pinRows {
		x := cx - len(pins)
		for i, idx := range pins {
			if knocked[idx] {
				dst.SetColor(x+i*2, y+row, '·', core.ColorGray)
			} else {
				dst.SetColor(x+i*2, y+row, 'o', core.ColorBrightWhite)
			}
		}
	}
}

// drawMeter draws the power gauge with the optimal window highlighted.
func drawMeter(dst *core.Screen, y int, power, lo, hi float64) {
	label := "Power "
	x := (dst.Width() - len(label) - meterWidth - 2) / 2
	dst.DrawTextColor(x, y, label+"[", core.ColorWhite)
	x += len(label) + 1

	for i := range meterWidth {
		pos := (float64(i) + 0.5) / meterWidth
		optimal := pos >= lo && pos <= hi
		switch {
		case pos <= power && optimal:
			dst.SetColor(x+i, y, '█', core.ColorGreen)
		case pos <= power:
			dst.SetColor(x+i, y, '█', core.ColorOrange)
		case optimal:
			dst.SetColor(x+i, y, '░', core.ColorGreen)
		default:
			dst.SetColor(x+i, y, '░', core.ColorGray)
		}
	}
	dst.SetColor(x+meterWidth, y, ']', core.ColorWhite)
}

func helpLine(snap Snapshot, active LaneSnapshot, viewer core.PlayerID) string {
	online := viewer != core.PlayerNone
	switch {
	case snap.GameOver && online:
		return "q leave"
	case snap.GameOver:
		return "r restart  q quit"
	case online && snap.Turn != int(viewer)-1:
		return fmt.Sprintf("Waiting for %s...", active.Name)
	case active.CPU:
		return fmt.Sprintf("%s is bowling...", active.Name)
	case online:
		return "0-9 pins  x strike  / spare  space bowl  q leave"
	default:
		return "0-9 pins  x strike  / spare  space bowl  p pause  q quit"
	}
}
