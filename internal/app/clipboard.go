package app

import "github.com/atotto/clipboard"

// Clipboard reads and writes the text clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// systemClipboard uses the desktop clipboard. Without a clipboard utility
// (no xclip, xsel or wl-copy) it keeps the text in process instead.
type systemClipboard struct {
	local string
}

// NewSystemClipboard returns the desktop clipboard.
func NewSystemClipboard() Clipboard {
	return &systemClipboard{}
}

func (c *systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return c.local, nil
	}
	return clipboard.ReadAll()
}

func (c *systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		c.local = text
		return nil
	}
	return clipboard.WriteAll(text)
}

// memoryClipboard is a process-local clipboard.
type memoryClipboard struct {
	text string
}

// NewMemoryClipboard returns a clipboard that never leaves the process.
func NewMemoryClipboard() Clipboard {
	return &memoryClipboard{}
}

func (c *memoryClipboard) ReadAll() (string, error) {
	return c.text, nil
}

func (c *memoryClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}
