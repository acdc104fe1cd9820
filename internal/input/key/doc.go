// Package key describes keyboard input independently of the terminal library.
//
//   - Key: a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta as a bit set
//   - Event: one key press
//
// Key specifications such as "Ctrl+S", "Shift+Tab" or "F3" are parsed with
// Parse and are what the keymap and the configuration file use.
package key
