package ui

import (
	"testing"

	"github.com/pthm-cable/skyhunt/systems"
)

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		out   systems.Outcome
		want  []string
		alert bool // Expect at least one alert line
	}{
		{
			name: "far from everything",
			out:  systems.Outcome{Remaining: 5, Total: 5},
			want: []string{MsgTargetFar, "Number of remaining insects: 5", MsgSafe},
		},
		{
			name:  "target and predator near",
			out:   systems.Outcome{Remaining: 3, Total: 5, TargetAlert: true, PredatorAlert: true},
			want:  []string{MsgTargetNear, "Number of remaining insects: 3", MsgPredatorNear},
			alert: true,
		},
		{
			name: "all eaten",
			out:  systems.Outcome{Remaining: 0, Total: 5},
			want: []string{MsgAllConsumed, MsgSafe},
		},
		{
			name:  "game over hides the rest",
			out:   systems.Outcome{Remaining: 2, Total: 5, AvatarConsumed: true, PredatorAlert: true},
			want:  []string{MsgGameOver},
			alert: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusLines(tt.out)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d lines, got %v", len(tt.want), got)
			}
			anyAlert := false
			for i, line := range got {
				if line.Text != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], line.Text)
				}
				anyAlert = anyAlert || line.Alert
			}
			if anyAlert != tt.alert {
				t.Errorf("alert = %v, want %v", anyAlert, tt.alert)
			}
		})
	}
}
