package filetree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/codepad/internal/logging"
)

// ErrNotDirectory is returned when the tree root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Node is a file or directory in the tree.
type Node struct {
	Name     string  // Base name
	Path     string  // Absolute path
	IsDir    bool    // True for directories, including symlinks to them
	Expanded bool    // Children are shown
	Depth    int     // 0 for entries directly under the root
	Parent   *Node   // nil at the top level
	Children []*Node // Sorted: directories first, then files
	loaded   bool
}

// Tree is a lazily loaded directory listing with a selection.
type Tree struct {
	root  string
	nodes []*Node

	visible    []*Node
	valid      bool
	sel        *Node
	scrollTop  int
	viewHeight int

	showHidden bool
	log        *logging.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithHidden shows entries whose names start with a dot.
func WithHidden(show bool) Option {
	return func(t *Tree) {
		t.showHidden = show
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tree) {
		t.log = l
	}
}

// New lists root. Directories are read when first expanded.
func New(root string, opts ...Option) (*Tree, error) {
	t := &Tree{viewHeight: 1, log: logging.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.WithComponent("filetree")
	if err := t.SetRoot(root); err != nil {
		return nil, err
	}
	return t, nil
}

// Root returns the absolute path of the listed directory.
func (t *Tree) Root() string {
	return t.root
}

// SetRoot lists dir instead of the current root. On error the tree is
// unchanged.
func (t *Tree) SetRoot(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	nodes, err := t.readDir(abs, nil)
	if err != nil {
		return err
	}
	t.root = abs
	t.nodes = nodes
	t.invalidate()
	t.sel = nil
	t.scrollTop = 0
	if len(nodes) > 0 {
		t.sel = nodes[0]
	}
	return nil
}

func (t *Tree) readDir(dir string, parent *Node) ([]*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !t.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}
		nodes = append(nodes, &Node{Name: name, Path: path, IsDir: isDir, Depth: depth, Parent: parent})
	}
	sortNodes(nodes)
	return nodes, nil
}

// sortNodes orders directories before files, then names case-insensitively.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir != nodes[j].IsDir {
			return nodes[i].IsDir
		}
		a, b := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if a != b {
			return a < b
		}
		return nodes[i].Name < nodes[j].Name
	})
}

func (t *Tree) invalidate() {
	t.valid = false
}

// Visible returns the nodes currently shown, top to bottom. The slice is
// shared until the next change to the tree.
func (t *Tree) Visible() []*Node {
	if t.valid {
		return t.visible
	}
	t.visible = t.visible[:0]
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			t.visible = append(t.visible, n)
			if n.IsDir && n.Expanded {
				walk(n.Children)
			}
		}
	}
	walk(t.nodes)
	t.valid = true
	return t.visible
}

// Selected returns the selected node, or nil for an empty tree.
func (t *Tree) Selected() *Node {
	return t.sel
}

// SelectedIndex returns the selected node's row in Visible, or -1.
func (t *Tree) SelectedIndex() int {
	for i, n := range t.Visible() {
		if n == t.sel {
			return i
		}
	}
	return -1
}

// Move moves the selection by delta rows, stopping at either end.
func (t *Tree) Move(delta int) {
	vis := t.Visible()
	if len(vis) == 0 {
		return
	}
	i := max(t.SelectedIndex(), 0) + delta
	i = min(max(i, 0), len(vis)-1)
	t.sel = vis[i]
	t.ensureVisible()
}

// Expand shows the children of directory n, reading it on first use.
func (t *Tree) Expand(n *Node) error {
	if n == nil || !n.IsDir {
		return nil
	}
	if !n.loaded {
		children, err := t.readDir(n.Path, n)
		if err != nil {
			return err
		}
		n.Children = children
		n.loaded = true
	}
	if !n.Expanded {
		n.Expanded = true
		t.invalidate()
	}
	return nil
}

// Collapse hides the children of directory n. A selection inside n moves
// to n.
func (t *Tree) Collapse(n *Node) {
	if n == nil || !n.IsDir || !n.Expanded {
		return
	}
	n.Expanded = false
	t.invalidate()
	for p := t.sel; p != nil; p = p.Parent {
		if p.Parent == n {
			t.sel = n
			break
		}
	}
	t.ensureVisible()
}

// Activate acts on the selection. A directory is expanded or collapsed and
// the returned path is empty; a file returns its path.
func (t *Tree) Activate() (string, error) {
	n := t.sel
	if n == nil {
		return "", nil
	}
	if !n.IsDir {
		return n.Path, nil
	}
	if n.Expanded {
		t.Collapse(n)
		return "", nil
	}
	return "", t.Expand(n)
}

// ExpandSelected expands a collapsed directory, or steps into an expanded
// one.
func (t *Tree) ExpandSelected() error {
	n := t.sel
	if n == nil || !n.IsDir {
		return nil
	}
	if !n.Expanded {
		return t.Expand(n)
	}
	if len(n.Children) > 0 {
		t.sel = n.Children[0]
		t.ensureVisible()
	}
	return nil
}

// CollapseSelected collapses an expanded directory, or moves to the parent.
func (t *Tree) CollapseSelected() {
	n := t.sel
	if n == nil {
		return
	}
	if n.IsDir && n.Expanded {
		t.Collapse(n)
		return
	}
	if n.Parent != nil {
		t.sel = n.Parent
		t.ensureVisible()
	}
}

// SelectPath selects the node for path, expanding its parent directories.
// It reports false when path is not inside the root or does not exist.
func (t *Tree) SelectPath(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(t.root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	nodes := t.nodes
	var found *Node
	parts := strings.Split(rel, string(filepath.Separator))
	for i, part := range parts {
		found = nil
		for _, n := range nodes {
			if n.Name == part {
				found = n
				break
			}
		}
		if found == nil {
			return false
		}
		if i < len(parts)-1 {
			if err := t.Expand(found); err != nil {
				return false
			}
			nodes = found.Children
		}
	}
	t.sel = found
	t.ensureVisible()
	return true
}

// Refresh re-reads the root and every expanded directory, keeping the
// expansion and, where it still exists, the selection.
func (t *Tree) Refresh() error {
	expanded := make(map[string]bool)
	var collect func(nodes []*Node)
	collect = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsDir && n.Expanded {
				expanded[n.Path] = true
				collect(n.Children)
			}
		}
	}
	collect(t.nodes)

	selected, row := "", t.SelectedIndex()
	if t.sel != nil {
		selected = t.sel.Path
	}

	nodes, err := t.readDir(t.root, nil)
	if err != nil {
		return err
	}
	t.nodes = nodes
	t.reexpand(nodes, expanded)
	t.invalidate()

	if selected != "" && t.SelectPath(selected) {
		return nil
	}
	t.sel = nil
	if vis := t.Visible(); len(vis) > 0 {
		t.sel = vis[min(max(row, 0), len(vis)-1)]
	}
	t.ensureVisible()
	return nil
}

func (t *Tree) reexpand(nodes []*Node, expanded map[string]bool) {
	for _, n := range nodes {
		if !expanded[n.Path] {
			continue
		}
		if err := t.Expand(n); err != nil {
			t.log.WithError(err).Warn("cannot read %s", n.Path)
			continue
		}
		t.reexpand(n.Children, expanded)
	}
}

// ScrollTop returns the first visible row.
func (t *Tree) ScrollTop() int {
	return t.scrollTop
}

// SetViewHeight sets the number of rows shown.
func (t *Tree) SetViewHeight(h int) {
	t.viewHeight = max(h, 1)
	t.ensureVisible()
}

// ViewHeight returns the number of rows shown.
func (t *Tree) ViewHeight() int {
	return t.viewHeight
}

// ensureVisible scrolls so the selected row is on screen.
func (t *Tree) ensureVisible() {
	row := t.SelectedIndex()
	if row < 0 {
		t.scrollTop = 0
		return
	}
	if row < t.scrollTop {
		t.scrollTop = row
	}
	if row >= t.scrollTop+t.viewHeight {
		t.scrollTop = row - t.viewHeight + 1
	}
	if last := len(t.Visible()) - t.viewHeight; t.scrollTop > last {
		t.scrollTop = max(last, 0)
	}
}
