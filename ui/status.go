package ui

import (
	"fmt"

	"github.com/pthm-cable/skyhunt/systems"
)

// StatusLine is one line of game status text.
type StatusLine struct {
	Text  string
	Alert bool
}

// Game status messages.
const (
	MsgTargetNear   = "Bird is close to an insect!"
	MsgTargetFar    = "Bird is not close to any insects."
	MsgAllConsumed  = "Congratulations! You have eaten all the insects!"
	MsgPredatorNear = "Be careful! The falcon is flying nearby and it's hungry!"
	MsgSafe         = "There is no danger for the bird."
	MsgGameOver     = "Game over! Your bird was eaten by the falcon!"
)

// StatusLines turns a logic outcome into the status text shown to the player.
func StatusLines(out systems.Outcome) []StatusLine {
	if out.AvatarConsumed {
		return []StatusLine{{Text: MsgGameOver, Alert: true}}
	}

	var lines []StatusLine
	if out.AllConsumed() {
		lines = append(lines, StatusLine{Text: MsgAllConsumed})
	} else {
		if out.TargetAlert {
			lines = append(lines, StatusLine{Text: MsgTargetNear})
		} else {
			lines = append(lines, StatusLine{Text: MsgTargetFar})
		}
		lines = append(lines, StatusLine{Text: fmt.Sprintf("Number of remaining insects: %d", out.Remaining)})
	}

	if out.PredatorAlert {
		lines = append(lines, StatusLine{Text: MsgPredatorNear, Alert: true})
	} else {
		lines = append(lines, StatusLine{Text: MsgSafe})
	}
	return lines
}
