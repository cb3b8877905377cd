//go:build linux || darwin || freebsd || netbsd || openbsd

package display

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckSize verifies that the terminal behind the file descriptor can fit
// the output of the renderer.
func (t *Terminal) CheckSize(fd int) error {
	winsize, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}

	columns, rows := t.Size()
	if int(winsize.Col) < columns || int(winsize.Row) < rows {
		return fmt.Errorf("%w: %dx%d, need %dx%d",
			ErrTerminalTooSmall, winsize.Col, winsize.Row, columns, rows)
	}
	return nil
}
