// Package term is the terminal I/O facade of spec.md §4.8: it puts the TTY
// into raw/no-echo/mouse-reporting mode, restores it on exit, answers
// width/height queries, and emits the CSI control sequences spec.md §6
// requires. Byte-level reads happen on a background goroutine so the
// application's input loop can poll with a timeout instead of blocking
// forever on os.Stdin, which Go has no portable way to do directly.
//
// Grounded on the teacher's direct golang.org/x/term dependency (used
// under the covers by its bubbletea-based dashboard) made explicit here.
package term

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/osmet/vitals/internal/apperrors"
)

const csi = "\x1b["

// Terminal owns raw-mode lifecycle and CSI emission for one controlling
// TTY. The zero value is not usable; construct with Open.
type Terminal struct {
	in       *os.File
	out      io.Writer
	oldState *term.State
	bytesCh  chan byte
	errCh    chan error
	stopCh   chan struct{}
}

// Open puts stdin into raw mode and starts the background byte reader. It
// returns an environment error (per spec.md §7) when stdin is not a TTY —
// "a missing TTY at startup is fatal."
func Open(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, apperrors.WrapWithCode(fmt.Errorf("stdin is not a tty"), apperrors.ErrEnvironment,
			"vitals requires an interactive terminal", "run vitals from an interactive shell")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrEnvironment, "failed to enter raw terminal mode", "")
	}

	t := &Terminal{
		in:       in,
		out:      out,
		oldState: oldState,
		bytesCh:  make(chan byte, 4096),
		errCh:    make(chan error, 1),
		stopCh:   make(chan struct{}),
	}
	go t.readLoop()

	t.EnterAltScreen()
	t.HideCursor()
	t.EnableMouse()
	return t, nil
}

// Restore undoes raw mode, disables mouse reporting, shows the cursor,
// and leaves the alt screen — the "force terminal restore" step of
// spec.md §5's shutdown sequence.
func (t *Terminal) Restore() {
	close(t.stopCh)
	t.DisableMouse()
	t.ShowCursor()
	t.ExitAltScreen()
	if t.oldState != nil {
		_ = term.Restore(int(t.in.Fd()), t.oldState)
	}
}

// Size returns the terminal's current (columns, rows).
func (t *Terminal) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(t.in.Fd()))
	if err != nil {
		return 0, 0, apperrors.WrapWithCode(err, apperrors.ErrEnvironment, "failed to query terminal size", "")
	}
	return cols, rows, nil
}

// ReadByte returns the next buffered input byte without blocking; ok is
// false when the background reader has no byte waiting.
func (t *Terminal) ReadByte() (b byte, ok bool) {
	select {
	case b = <-t.bytesCh:
		return b, true
	default:
		return 0, false
	}
}

// Bytes exposes the channel directly for callers (e.g. internal/input)
// that want to select on it alongside a ticker or timeout.
func (t *Terminal) Bytes() <-chan byte { return t.bytesCh }

func (t *Terminal) readLoop() {
	buf := make([]byte, 256)
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}
		n, err := t.in.Read(buf)
		if err != nil {
			select {
			case t.errCh <- err:
			default:
			}
			return
		}
		for i := 0; i < n; i++ {
			select {
			case t.bytesCh <- buf[i]:
			case <-t.stopCh:
				return
			}
		}
	}
}

func (t *Terminal) write(seq string) { fmt.Fprint(t.out, seq) }

// EnterAltScreen / ExitAltScreen toggle the alternate screen buffer.
func (t *Terminal) EnterAltScreen() { t.write(csi + "?1049h") }
func (t *Terminal) ExitAltScreen()  { t.write(csi + "?1049l") }

// HideCursor / ShowCursor toggle cursor visibility.
func (t *Terminal) HideCursor() { t.write(csi + "?25l") }
func (t *Terminal) ShowCursor() { t.write(csi + "?25h") }

// Clear clears the screen and homes the cursor.
func (t *Terminal) Clear() { t.write(csi + "2J" + csi + "0;0f") }

// EnableMouse / DisableMouse toggle SGR mouse reporting.
func (t *Terminal) EnableMouse()  { t.write(csi + "?1002h" + csi + "?1015h" + csi + "?1006h") }
func (t *Terminal) DisableMouse() { t.write(csi + "?1002l") }

// MoveTo positions the cursor at 1-based (row, col).
func (t *Terminal) MoveTo(row, col int) { t.write(fmt.Sprintf(csi+"%d;%df", row, col)) }

// MoveUp/Down/Forward/Back move the cursor n cells relative to its current
// position.
func (t *Terminal) MoveUp(n int)      { t.write(fmt.Sprintf(csi+"%dA", n)) }
func (t *Terminal) MoveDown(n int)    { t.write(fmt.Sprintf(csi+"%dB", n)) }
func (t *Terminal) MoveForward(n int) { t.write(fmt.Sprintf(csi+"%dC", n)) }
func (t *Terminal) MoveBack(n int)    { t.write(fmt.Sprintf(csi+"%dD", n)) }

// SaveCursor / RestoreCursor bracket a region the caller will temporarily
// move the cursor within.
func (t *Terminal) SaveCursor()    { t.write(csi + "s") }
func (t *Terminal) RestoreCursor() { t.write(csi + "u") }

// ResetSGR clears all active SGR attributes.
func (t *Terminal) ResetSGR() { t.write(csi + "0m") }

// Write implements io.Writer so render output can be streamed directly
// under the output lock spec.md §5 requires callers to hold.
func (t *Terminal) Write(p []byte) (int, error) {
	return fmt.Fprint(t.out, string(p))
}
