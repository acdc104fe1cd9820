// Package workspace manages the open editor panes: creating untitled tabs,
// opening and saving files, closing with unsaved-changes prompts, and
// noticing when open files change on disk.
//
// The Manager is driven from the editor's event loop and is not safe for
// concurrent use. The only goroutine is the file Watcher, whose Events
// channel the loop drains into HandleFileEvent.
package workspace
