package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar is the single-line bar at the bottom of the screen.
type StatusBar struct {
	*tview.TextView
	profile string
	filter  string
	notice  string
	hints   string
}

// NewStatusBar creates the status bar.
func NewStatusBar(profile string) *StatusBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	s := &StatusBar{TextView: tv, profile: profile}
	s.Render()
	return s
}

// SetFilter updates the displayed category filter.
func (s *StatusBar) SetFilter(label string) {
	s.filter = label
}

// SetNotice updates the transient notice section.
func (s *StatusBar) SetNotice(msg string) {
	s.notice = msg
}

// SetHints updates the keybinding hint section.
func (s *StatusBar) SetHints(hints string) {
	s.hints = hints
}

// Render redraws the bar. Called from the refresh loop so the clock
// and notice expiry stay current.
func (s *StatusBar) Render() {
	s.Clear()
	fmt.Fprintf(s, " [::b]%s[-:-:-]", tview.Escape(s.profile))
	if s.filter != "" {
		fmt.Fprintf(s, " | %s", s.filter)
	}
	if s.notice != "" {
		fmt.Fprintf(s, " | [yellow]%s[-]", tview.Escape(s.notice))
	} else if s.hints != "" {
		fmt.Fprintf(s, " | [::d]%s[-:-:-]", tview.Escape(s.hints))
	}
	fmt.Fprintf(s, " | %s", time.Now().Format("15:04"))
}
