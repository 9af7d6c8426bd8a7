//go:build linux

package system

import (
    "fmt"
    "os"

    "golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
    kdText     = 0x00
    kdGraphics = 0x01
    kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Prefer /dev/tty (active VT), fallback to /dev/tty0.
var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

// SetGraphicsMode switches the active console to graphics mode so the text
// console does not draw over the framebuffer.
func SetGraphicsMode() error { return setKDMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode restores the console to text mode so cursor and normal console return.
func RestoreTextMode() error { return setKDMode(kdText, "KD_TEXT") }

func setKDMode(mode int, name string) error {
    var lastErr error
    for _, p := range ttyPaths {
        fd, err := unix.Open(p, unix.O_RDONLY, 0)
        if err != nil {
            lastErr = fmt.Errorf("open %s: %w", p, err)
            continue
        }
        err = unix.IoctlSetInt(fd, kdSetMode, mode)
        _ = unix.Close(fd)
        if err != nil {
            lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
            continue
        }
        return nil
    }
    if lastErr != nil {
        return lastErr
    }
    return fmt.Errorf("%s failed: unknown error", name)
}

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }

func writeVT(s string) error {
    var lastErr error
    for _, p := range ttyPaths {
        f, err := os.OpenFile(p, os.O_WRONLY, 0)
        if err != nil {
            lastErr = err
            continue
        }
        _, err = f.WriteString(s)
        _ = f.Close()
        if err == nil {
            return nil
        }
        lastErr = err
    }
    if lastErr != nil {
        return fmt.Errorf("write VT failed: %v", lastErr)
    }
    return fmt.Errorf("write VT failed: unknown error")
}
