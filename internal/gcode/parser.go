package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MoveType represents the type of laser head movement.
type MoveType int

const (
	MoveRapid MoveType = iota // G0: rapid positioning, never cuts
	MoveFeed                  // G1 with the laser off
	MoveCut                   // G1 with the laser on
)

func (m MoveType) String() string {
	switch m {
	case MoveFeed:
		return "feed"
	case MoveCut:
		return "cut"
	default:
		return "rapid"
	}
}

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
	Power    int
}

// Length is the XY distance covered by the move.
func (m GCodeMove) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYFS])(-?\d+\.?\d*)`)

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute position, feed rate and laser state; M3 and M4 switch
// the laser on, M5 switches it off.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY := 0.0, 0.0
	curFeed := 0.0
	power := 0
	laserOn := false

	for _, line := range strings.Split(code, "\n") {
		line = stripComments(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		fields := strings.Fields(upper)

		switch fields[0] {
		case "M3", "M03", "M4", "M04":
			laserOn = true
			if s, ok := word(upper, "S"); ok {
				power = int(s)
			}
			continue
		case "M5", "M05":
			laserOn = false
			continue
		case "G0", "G00", "G1", "G01":
		default:
			continue
		}
		isRapid := fields[0] == "G0" || fields[0] == "G00"

		newX, newY, newFeed := curX, curY, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "F":
				newFeed = val
			case "S":
				power = int(val)
			}
		}

		moveType := MoveRapid
		if !isRapid {
			moveType = MoveFeed
			if laserOn && power > 0 {
				moveType = MoveCut
			}
		}

		moves = append(moves, GCodeMove{
			Type:     moveType,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
			Power:    power,
		})

		curX, curY, curFeed = newX, newY, newFeed
	}

	return moves
}

// stripComments removes semicolon and parenthetical comments.
func stripComments(line string) string {
	line = strings.TrimSpace(line)
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		}
	}
	return strings.TrimSpace(line)
}

func word(line, letter string) (float64, bool) {
	for _, m := range coordRe.FindAllStringSubmatch(line, -1) {
		if m[1] == letter {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// JobEstimate summarises a parsed program.
type JobEstimate struct {
	CutLength    float64 // mm cut with the laser on
	TravelLength float64 // mm moved with the laser off
	Cuts         int
	Duration     time.Duration
}

// EstimateJob sums move lengths and times. Rapid moves run at travelRate;
// feed moves use their own feed rate and fall back to travelRate when the
// program never set one.
func EstimateJob(moves []GCodeMove, travelRate float64) JobEstimate {
	var est JobEstimate
	var minutes float64
	for _, m := range moves {
		l := m.Length()
		if m.Type == MoveCut {
			est.CutLength += l
			est.Cuts++
		} else {
			est.TravelLength += l
		}

		rate := m.FeedRate
		if m.Type == MoveRapid || rate <= 0 {
			rate = travelRate
		}
		if rate > 0 {
			minutes += l / rate
		}
	}
	est.Duration = time.Duration(minutes * float64(time.Minute))
	return est
}
