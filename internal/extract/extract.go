// Package extract incrementally recovers the first balanced JSON object
// embedded in a stream of text fragments. The model may narrate before the
// object, and may wrap illustrative code in backtick fences; braces inside a
// fence are never scanned, and braces inside JSON string literals never
// affect the balance count.
//
// The machine is fed one fragment at a time and has no notion of fragment
// boundaries — feeding "ab" then "c" is identical to feeding "abc". State is
// carried as an explicit value between calls, so the caller owns exactly one
// extraction session per state chain.
package extract

import "strings"

// State is one snapshot of the extraction machine. Exactly one concrete
// variant is live at a time; Feed consumes the old value and returns a new
// one, so a given State is valid for exactly one step.
type State interface {
	isState()
}

// idle scans narration, waiting for a '{' or a backtick.
type idle struct{}

// active captures a JSON object. buf holds everything captured so far
// including the outer braces; depth counts unmatched '{' seen outside
// string literals and is >= 1 for as long as this state is live.
//
// escaped is true for exactly one step after an unescaped backslash inside
// a string. The backslash itself is deferred and written together with the
// character it escapes, so escape sequences survive verbatim in buf and the
// buffer stays a valid JSON prefix.
type active struct {
	buf      string
	depth    int
	inString bool
	escaped  bool
}

// maybeFence counts an opening run of backticks, still deciding its width.
type maybeFence struct {
	ticks int
}

// fence skips fenced content until a run of width consecutive backticks
// closes it. run counts the in-progress closing run.
type fence struct {
	width int
	run   int
}

func (idle) isState()       {}
func (active) isState()     {}
func (maybeFence) isState() {}
func (fence) isState()      {}

// NewState returns the initial state for a fresh extraction session.
func NewState() State {
	return idle{}
}

// Feed runs the machine over fragment one character at a time, threading
// state across characters. It returns the next state, the completed JSON
// object (empty until one closes), and the narration passthrough produced
// by this fragment. Characters consumed into a JSON capture or used for
// fence bookkeeping never appear in the passthrough.
//
// Once an object completes the machine returns to idle and keeps emitting
// passthrough. At most one completed object is reported per call; callers
// that want only the first object stop feeding once completed is non-empty.
func Feed(state State, fragment string) (next State, completed string, passthrough string) {
	var pass strings.Builder

	for _, ch := range fragment {
		switch s := state.(type) {
		case idle:
			switch ch {
			case '{':
				state = active{buf: "{", depth: 1}
			case '`':
				pass.WriteRune(ch)
				state = maybeFence{ticks: 1}
			default:
				pass.WriteRune(ch)
			}

		case active:
			var done string
			state, done = stepActive(s, ch)
			if done != "" && completed == "" {
				completed = done
			}

		case maybeFence:
			pass.WriteRune(ch)
			if ch == '`' {
				state = maybeFence{ticks: s.ticks + 1}
			} else {
				state = fence{width: s.ticks}
			}

		case fence:
			pass.WriteRune(ch)
			if ch == '`' {
				if s.run+1 == s.width {
					state = idle{}
				} else {
					state = fence{width: s.width, run: s.run + 1}
				}
			} else {
				// Any non-backtick character resets the closing run.
				state = fence{width: s.width}
			}
		}
	}

	return state, completed, pass.String()
}

// stepActive advances an in-progress JSON capture by one character.
// It returns the next state and, when the outermost brace closes, the
// completed object text.
func stepActive(s active, ch rune) (State, string) {
	switch {
	case ch == '{' && !s.inString:
		s.buf += "{"
		s.depth++
		return s, ""

	case ch == '}' && !s.inString:
		s.buf += "}"
		s.depth--
		if s.depth == 0 {
			return idle{}, s.buf
		}
		return s, ""

	case ch == '"' && !s.escaped:
		s.buf += `"`
		s.inString = !s.inString
		return s, ""

	case ch == '\\' && !s.escaped:
		// Defer the backslash; it is written on the next step together
		// with the character it escapes.
		s.escaped = true
		return s, ""

	default:
		if s.escaped {
			s.buf += `\`
			s.escaped = false
		}
		s.buf += string(ch)
		return s, ""
	}
}
