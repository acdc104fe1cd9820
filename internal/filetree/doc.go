// Package filetree is the directory listing shown in the sidebar.
//
// A Tree lists one root directory. Directories are read the first time they
// are expanded, and entries whose names start with a dot are left out unless
// WithHidden is given. Within a directory, subdirectories come first and
// names sort case-insensitively.
//
//	t, err := filetree.New(".")
//	t.Move(1)
//	path, err := t.Activate() // expands a directory or returns a file path
//
// Refresh re-reads the listing after files are created or deleted; expanded
// directories stay expanded.
package filetree
