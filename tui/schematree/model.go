// Package schematree provides an interactive tree viewer for JSON schema
// documents. Reference values ($ref) are classified and colored by where they
// point, and internal references that do not resolve against the document are
// flagged inline.
package schematree

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lokitools/schema/resolver"
	"github.com/lokitools/schema/tui/theme"
)

// node represents an element in the schema tree.
type node struct {
	key       string
	value     interface{}
	valueType string // "object", "array", "string", "number", "boolean", "null"
	depth     int
	children  []*node
	collapsed bool
	isLast    bool // Is this the last child of its parent?

	// Reference classification for $ref leaves
	isRef     bool
	refKind   resolver.RefKind
	refBroken bool
}

// Model is the Bubble Tea model for the schema tree viewer.
type Model struct {
	viewport        viewport.Model
	root            *node
	rootDoc         map[string]interface{} // Original document for probing internal refs
	nodes           []*node                // A flattened list of visible nodes for rendering
	cursor          int
	keys            KeyMap
	help            help.Model
	width           int
	height          int
	ready           bool
	lastZPress      time.Time // For detecting zR/zM sequences
	lastGPress      time.Time // For detecting gg sequence
	renderedContent string    // Cached rendered content for direct display
}

// BackMsg is sent when the user wants to exit the schema viewer
type BackMsg struct{}

// New creates a new schema tree model.
func New(data interface{}) Model {
	m := Model{
		keys: DefaultKeyMap(),
		help: help.New(),
	}

	if data != nil {
		m.root = buildTree("root", data, 0)
		if doc, ok := data.(map[string]interface{}); ok {
			m.rootDoc = doc
		}
		classifyRefs(m.root, m.rootDoc)
		m.nodes = flattenTree(m.root)
	}

	return m
}

// SetSize sets the size of the component. One line is reserved for the help
// footer.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	vpHeight := height - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	if m.ready {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	}
	m.updateContent()
}

// buildTree recursively builds a tree of nodes from schema data.
func buildTree(key string, value interface{}, depth int) *node {
	n := &node{
		key:   key,
		value: value,
		depth: depth,
	}

	switch v := value.(type) {
	case map[string]interface{}:
		n.valueType = "object"
		n.collapsed = depth > 0 // Start collapsed except root

		// Sort keys for consistent ordering
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i, k := range keys {
			child := buildTree(k, v[k], depth+1)
			child.isLast = i == len(keys)-1
			n.children = append(n.children, child)
		}

	case []interface{}:
		n.valueType = "array"
		n.collapsed = depth > 0 // Start collapsed except root

		for i, item := range v {
			child := buildTree(fmt.Sprintf("[%d]", i), item, depth+1)
			child.isLast = i == len(v)-1
			n.children = append(n.children, child)
		}

	case string:
		n.valueType = "string"
	case float64:
		n.valueType = "number"
	case bool:
		n.valueType = "boolean"
	case nil:
		n.valueType = "null"
	default:
		n.valueType = "unknown"
	}

	return n
}

// classifyRefs walks the tree and annotates $ref leaves with their kind.
// Internal references are probed against the root document so broken pointers
// can be flagged.
func classifyRefs(n *node, rootDoc map[string]interface{}) {
	if n == nil {
		return
	}
	if n.key == "$ref" && n.valueType == "string" {
		n.isRef = true
		kind, err := resolver.EvaluateRef(n.value)
		if err != nil {
			n.refBroken = true
		} else {
			n.refKind = kind
			if kind == resolver.RefInternal && rootDoc != nil {
				if _, err := resolver.FetchValue(n.value, rootDoc); err != nil {
					n.refBroken = true
				}
			}
		}
	}
	for _, child := range n.children {
		classifyRefs(child, rootDoc)
	}
}

// flattenTree creates a flattened list of visible nodes for rendering.
func flattenTree(root *node) []*node {
	if root == nil {
		return nil
	}

	var nodes []*node
	var flatten func(n *node)
	flatten = func(n *node) {
		nodes = append(nodes, n)
		if !n.collapsed && len(n.children) > 0 {
			for _, child := range n.children {
				flatten(child)
			}
			// Add closing bracket node after children
			if n.valueType == "object" || n.valueType == "array" {
				closingNode := &node{
					key:       "", // empty key indicates closing bracket
					depth:     n.depth,
					valueType: "closing_" + n.valueType,
				}
				nodes = append(nodes, closingNode)
			}
		}
	}

	// For root wrapper, show opening bracket, children, then closing bracket
	if root.key == "root" && (root.valueType == "object" || root.valueType == "array") {
		// Add opening bracket
		openingNode := &node{
			key:       "",
			depth:     0,
			valueType: "opening_" + root.valueType,
		}
		nodes = append(nodes, openingNode)

		// Add children
		for _, child := range root.children {
			flatten(child)
		}

		// Add closing bracket
		closingNode := &node{
			key:       "",
			depth:     0,
			valueType: "closing_" + root.valueType,
		}
		nodes = append(nodes, closingNode)
	} else {
		flatten(root)
	}

	return nodes
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keyStr := msg.String()

		// Handle zR and zM sequences
		if keyStr == "z" {
			m.lastZPress = time.Now()
			return m, nil
		}

		// Check for zR/zM within time window
		if time.Since(m.lastZPress) < 500*time.Millisecond {
			switch keyStr {
			case "R", "shift+r":
				// zR - expand all
				m.expandAll()
				m.lastZPress = time.Time{}
				return m, nil
			case "M", "shift+m":
				// zM - collapse all
				m.collapseAll()
				m.lastZPress = time.Time{}
				return m, nil
			}
		}

		// Handle gg sequence (go to top)
		if keyStr == "g" {
			if time.Since(m.lastGPress) < 500*time.Millisecond {
				// Double 'g' pressed - go to top
				m.cursor = 0
				m.updateContent()
				m.lastGPress = time.Time{}
				return m, nil
			}
			m.lastGPress = time.Now()
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.updateContent()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
				m.updateContent()
			}
			return m, nil

		case key.Matches(msg, m.keys.HalfPageUp):
			// Move cursor up by half page
			halfPage := m.viewport.Height / 2
			m.cursor -= halfPage
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.HalfPageDown):
			// Move cursor down by half page
			halfPage := m.viewport.Height / 2
			m.cursor += halfPage
			if m.cursor >= len(m.nodes) {
				m.cursor = len(m.nodes) - 1
			}
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.GotoEnd):
			// G - go to end
			m.cursor = len(m.nodes) - 1
			m.updateContent()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(m.nodes) {
				n := m.nodes[m.cursor]
				if len(n.children) > 0 {
					n.collapsed = !n.collapsed
					m.nodes = flattenTree(m.root)
					// Ensure cursor is still valid
					if m.cursor >= len(m.nodes) {
						m.cursor = len(m.nodes) - 1
					}
					m.updateContent()
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Fold):
			// h - fold/collapse current node (vim-style)
			if m.cursor < len(m.nodes) {
				n := m.nodes[m.cursor]
				if len(n.children) > 0 && !n.collapsed {
					n.collapsed = true
					m.nodes = flattenTree(m.root)
					m.updateContent()
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// expandAll expands all nodes in the tree.
func (m *Model) expandAll() {
	var expand func(n *node)
	expand = func(n *node) {
		n.collapsed = false
		for _, child := range n.children {
			expand(child)
		}
	}
	if m.root != nil {
		expand(m.root)
		m.nodes = flattenTree(m.root)
		m.updateContent()
	}
}

// collapseAll collapses all nodes in the tree.
func (m *Model) collapseAll() {
	var collapse func(n *node)
	collapse = func(n *node) {
		if n.depth > 0 {
			n.collapsed = true
		}
		for _, child := range n.children {
			collapse(child)
		}
	}
	if m.root != nil {
		collapse(m.root)
		m.nodes = flattenTree(m.root)
		// Reset cursor to start
		m.cursor = 0
		m.updateContent()
	}
}

// BrokenRefCount returns the number of $ref values that could not be
// classified or resolved.
func (m *Model) BrokenRefCount() int {
	count := 0
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		if n.isRef && n.refBroken {
			count++
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(m.root)
	return count
}

// updateContent renders the tree and updates the viewport.
func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	var lines []string
	for i, n := range m.nodes {
		line := m.renderNode(n, i == m.cursor)
		lines = append(lines, line)
	}

	// Join lines without extra spacing
	content := strings.Join(lines, "\n")
	m.viewport.SetContent(content)
	m.renderedContent = content // Cache for direct access

	// Auto-scroll to keep cursor visible
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// renderNode renders a single node line.
func (m *Model) renderNode(n *node, selected bool) string {
	// Build indentation
	indent := strings.Repeat("  ", n.depth)
	valueStyle := theme.DefaultTheme.Muted

	// Handle opening brackets
	if n.valueType == "opening_object" {
		line := indent + valueStyle.Render("{")
		if selected {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		return line
	}
	if n.valueType == "opening_array" {
		line := indent + valueStyle.Render("[")
		if selected {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		return line
	}

	// Handle closing brackets
	if n.valueType == "closing_object" {
		line := indent + valueStyle.Render("}")
		if selected {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		return line
	}
	if n.valueType == "closing_array" {
		line := indent + valueStyle.Render("]")
		if selected {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		return line
	}

	// Build prefix (fold icon or leaf alignment)
	var prefix string
	if len(n.children) > 0 {
		if n.collapsed {
			prefix = theme.IconFolderPlus + " "
		} else {
			prefix = theme.IconFolderOpen + " "
		}
	} else {
		prefix = "  " // Two spaces for leaf alignment
	}

	// Build key display
	keyStyle := theme.DefaultTheme.Info
	if n.isRef {
		keyStyle = theme.DefaultTheme.Accent
	}
	keyDisplay := keyStyle.Render(n.key)

	// Build value display
	var valueDisplay string

	switch n.valueType {
	case "object":
		if n.collapsed {
			valueDisplay = valueStyle.Render(fmt.Sprintf("{...} (%d fields)", len(n.children)))
		} else {
			valueDisplay = valueStyle.Render("{")
		}
	case "array":
		if n.collapsed {
			valueDisplay = valueStyle.Render(fmt.Sprintf("[...] (%d items)", len(n.children)))
		} else {
			valueDisplay = valueStyle.Render("[")
		}
	case "string":
		valStr := fmt.Sprintf("\"%v\"", n.value)
		if n.isRef {
			valueDisplay = m.renderRefValue(n, valStr)
		} else {
			valueDisplay = theme.DefaultTheme.Success.Render(valStr)
		}
	case "number":
		var valStr string
		if v, ok := n.value.(float64); ok {
			if v == float64(int64(v)) {
				valStr = fmt.Sprintf("%.0f", v)
			} else {
				valStr = fmt.Sprintf("%v", v)
			}
		} else {
			valStr = fmt.Sprintf("%v", n.value)
		}
		valueDisplay = theme.DefaultTheme.Warning.Render(valStr)
	case "boolean":
		valueDisplay = theme.DefaultTheme.Accent.Render(fmt.Sprintf("%v", n.value))
	case "null":
		valueDisplay = theme.DefaultTheme.Error.Render("null")
	default:
		valueDisplay = valueStyle.Render(fmt.Sprintf("%v", n.value))
	}

	// Combine parts
	line := fmt.Sprintf("%s%s%s: %s", indent, prefix, keyDisplay, valueDisplay)

	// Apply selection styling
	if selected {
		line = theme.DefaultTheme.Selected.Render(line)
	}

	return line
}

// renderRefValue styles a $ref value by its classification. Broken references
// carry a warning marker.
func (m *Model) renderRefValue(n *node, valStr string) string {
	if n.refBroken {
		return theme.DefaultTheme.Error.Render(valStr + " " + theme.IconWarning)
	}
	switch n.refKind {
	case resolver.RefInternal:
		return theme.DefaultTheme.Accent.Render(valStr)
	case resolver.RefExternal, resolver.RefExternalInternal:
		return theme.DefaultTheme.Info.Render(valStr)
	}
	return theme.DefaultTheme.Success.Render(valStr)
}

// View renders the schema tree with a one-line help footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing schema viewer..."
	}

	if m.root == nil {
		return theme.DefaultTheme.Muted.Render("No schema data to display")
	}

	return m.viewport.View() + "\n" + m.help.View(m.keys)
}
