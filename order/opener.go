package order

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Opener hands a deep link to whatever opens it in a new browsing context.
type Opener interface {
	Open(link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(link string) error

func (f OpenerFunc) Open(link string) error { return f(link) }

// BrowserOpener opens links with the platform's URL handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(link string) error {
	name, args := browserCommand(runtime.GOOS)
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("no URL opener available: %w", err)
	}
	cmd := exec.Command(name, append(args, link)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open link: %w", err)
	}
	// the opener exits once it has handed off the URL
	go func() { _ = cmd.Wait() }()
	return nil
}

func browserCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// ClipboardOpener copies the link instead of opening it, for headless terminals.
type ClipboardOpener struct{}

func (ClipboardOpener) Open(link string) error {
	if err := clipboard.WriteAll(link); err != nil {
		return fmt.Errorf("copy link: %w", err)
	}
	return nil
}

// FallbackOpener tries each opener in turn and returns the last error if all fail.
type FallbackOpener []Opener

func (f FallbackOpener) Open(link string) error {
	var err error
	for _, o := range f {
		if err = o.Open(link); err == nil {
			return nil
		}
	}
	if err == nil {
		return fmt.Errorf("no opener configured")
	}
	return err
}

// DefaultOpener opens in the browser and falls back to the clipboard.
func DefaultOpener() Opener {
	return FallbackOpener{BrowserOpener{}, ClipboardOpener{}}
}
