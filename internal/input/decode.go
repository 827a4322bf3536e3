// Package input implements the input dispatcher of spec.md §4.7: decoding
// raw terminal bytes into symbolic key/mouse events, and routing those
// events to dashboard actions via a fixed keybinding table.
//
// Decoded events are represented with bubbletea's tea.KeyMsg/tea.MouseMsg
// vocabulary instead of a bespoke one — see DESIGN.md's "why not
// tea.Program" note: vitals drives its own tick/input/render goroutines,
// but reuses the teacher's message types so the decode/route tables read
// the same way the teacher's internal/monitor/keybindings.go does.
package input

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Decoder turns a stream of raw bytes into tea.KeyMsg/tea.MouseMsg values,
// per spec.md §4.7's "fixed table" of escape, arrow, navigation, function,
// shifted-tab and mouse sequences.
type Decoder struct {
	pending []byte
}

// Feed appends newly-read bytes and returns every fully-decoded message
// the buffer now contains. Bytes that look like the start of an escape
// sequence but aren't yet complete are held back until more arrive.
func (d *Decoder) Feed(b byte) []tea.Msg {
	d.pending = append(d.pending, b)
	var out []tea.Msg
	for {
		msg, consumed, complete := decodeOne(d.pending)
		if !complete {
			break
		}
		out = append(out, msg)
		d.pending = d.pending[consumed:]
		if len(d.pending) == 0 {
			break
		}
	}
	return out
}

// decodeOne attempts to decode a single message from the front of buf.
// complete is false when buf is a valid prefix of a longer sequence and
// the caller should wait for more bytes.
func decodeOne(buf []byte) (msg tea.Msg, consumed int, complete bool) {
	if len(buf) == 0 {
		return nil, 0, false
	}

	if buf[0] != 0x1b {
		return decodeRune(buf)
	}

	// A lone ESC is held until the next byte arrives: '[' or 'O' continues
	// an escape sequence, anything else resolves it to a standalone KeyEsc
	// (below). A bare Escape keypress is therefore reported once the next
	// byte is read.
	if len(buf) == 1 {
		return nil, 0, false
	}

	if buf[1] == '[' {
		return decodeCSI(buf)
	}
	if buf[1] == 'O' {
		return decodeSS3(buf)
	}

	// ESC followed by something unrecognized: treat as a standalone Esc
	// and let the next byte decode independently.
	return tea.KeyMsg{Type: tea.KeyEsc}, 1, true
}

func decodeRune(buf []byte) (tea.Msg, int, bool) {
	r, size := decodeUTF8(buf)
	if size == 0 {
		return nil, 0, false
	}
	if kt, ok := singleByteKeys[r]; ok {
		return tea.KeyMsg{Type: kt}, size, true
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, size, true
}

// decodeUTF8 returns the rune at the front of buf and how many bytes it
// consumed, 0 if buf doesn't yet hold a complete UTF-8 cluster.
func decodeUTF8(buf []byte) (rune, int) {
	b0 := buf[0]
	switch {
	case b0 < 0x80:
		return rune(b0), 1
	case b0&0xE0 == 0xC0:
		if len(buf) < 2 {
			return 0, 0
		}
		return rune(b0&0x1F)<<6 | rune(buf[1]&0x3F), 2
	case b0&0xF0 == 0xE0:
		if len(buf) < 3 {
			return 0, 0
		}
		return rune(b0&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F), 3
	case b0&0xF8 == 0xF0:
		if len(buf) < 4 {
			return 0, 0
		}
		return rune(b0&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F), 4
	default:
		return rune(b0), 1
	}
}

var singleByteKeys = map[rune]tea.KeyType{
	0x03: tea.KeyCtrlC,
	0x09: tea.KeyTab,
	0x0d: tea.KeyEnter,
	0x7f: tea.KeyBackspace,
	0x08: tea.KeyBackspace,
}

// csiFinals are the final bytes that terminate a CSI sequence.
const csiFinals = "ABCDFHZMm~"

func decodeCSI(buf []byte) (tea.Msg, int, bool) {
	i := 2
	for i < len(buf) && !strings.ContainsRune(csiFinals, rune(buf[i])) {
		i++
	}
	if i >= len(buf) {
		return nil, 0, false // sequence not finished yet
	}
	final := buf[i]
	params := string(buf[2:i])
	consumed := i + 1

	switch {
	case final == 'A':
		return tea.KeyMsg{Type: tea.KeyUp}, consumed, true
	case final == 'B':
		return tea.KeyMsg{Type: tea.KeyDown}, consumed, true
	case final == 'C':
		return tea.KeyMsg{Type: tea.KeyRight}, consumed, true
	case final == 'D':
		return tea.KeyMsg{Type: tea.KeyLeft}, consumed, true
	case final == 'H':
		return tea.KeyMsg{Type: tea.KeyHome}, consumed, true
	case final == 'F':
		return tea.KeyMsg{Type: tea.KeyEnd}, consumed, true
	case final == 'Z':
		return tea.KeyMsg{Type: tea.KeyShiftTab}, consumed, true
	case final == '~':
		return decodeTilde(params, consumed)
	case final == 'M' || final == 'm':
		return decodeSGRMouse(params, final == 'M', consumed)
	}
	return tea.KeyMsg{Type: tea.KeyEsc}, consumed, true
}

func decodeTilde(params string, consumed int) (tea.Msg, int, bool) {
	switch params {
	case "1", "7":
		return tea.KeyMsg{Type: tea.KeyHome}, consumed, true
	case "4", "8":
		return tea.KeyMsg{Type: tea.KeyEnd}, consumed, true
	case "3":
		return tea.KeyMsg{Type: tea.KeyDelete}, consumed, true
	case "5":
		return tea.KeyMsg{Type: tea.KeyPgUp}, consumed, true
	case "6":
		return tea.KeyMsg{Type: tea.KeyPgDown}, consumed, true
	}
	return tea.KeyMsg{Type: tea.KeyEsc}, consumed, true
}

func decodeSS3(buf []byte) (tea.Msg, int, bool) {
	if len(buf) < 3 {
		return nil, 0, false
	}
	switch buf[2] {
	case 'P', 'Q', 'R', 'S': // F1-F4
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('a' + buf[2] - 'P')}}, 3, true
	}
	return tea.KeyMsg{Type: tea.KeyEsc}, 2, true
}

// decodeSGRMouse parses `\x1b[<b;col;lineM` (press) or `...m` (release),
// per spec.md §4.7.
func decodeSGRMouse(params string, pressed bool, consumed int) (tea.Msg, int, bool) {
	parts := strings.SplitN(strings.TrimPrefix(params, "<"), ";", 3)
	if len(parts) != 3 {
		return tea.MouseMsg{}, consumed, true
	}
	b, _ := strconv.Atoi(parts[0])
	col, _ := strconv.Atoi(parts[1])
	row, _ := strconv.Atoi(parts[2])

	action := tea.MouseActionRelease
	if pressed {
		action = tea.MouseActionPress
	}

	button := tea.MouseButtonLeft
	switch b & 0x3 {
	case 1:
		button = tea.MouseButtonMiddle
	case 2:
		button = tea.MouseButtonRight
	}
	if b&0x40 != 0 {
		if b&0x1 != 0 {
			button = tea.MouseButtonWheelDown
		} else {
			button = tea.MouseButtonWheelUp
		}
	}

	return tea.MouseMsg{X: col - 1, Y: row - 1, Action: action, Button: button}, consumed, true
}
