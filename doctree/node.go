package doctree

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Node is a single node in a rich-document tree. A node is one of three
// kinds: a text leaf (Text set), a container (Content set), or an opaque
// node (neither set), which extraction skips. The kinds are not exclusive
// in the wire format, so both fields are walked when present.
type Node struct {
	Type    string         `json:"type,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// Mark is an inline style annotation (bold, link, ...). Extraction ignores
// marks entirely.
type Mark struct {
	Type  string         `json:"type,omitempty"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// blockTypes are the node types treated as block-level containers during
// extraction. Finishing a block appends a separating space so adjacent
// blocks do not merge into one word.
var blockTypes = map[string]bool{
	"paragraph":      true,
	"heading":        true,
	"blockquote":     true,
	"codeBlock":      true,
	"bulletList":     true,
	"orderedList":    true,
	"listItem":       true,
	"taskList":       true,
	"taskItem":       true,
	"table":          true,
	"tableRow":       true,
	"tableCell":      true,
	"tableHeader":    true,
	"horizontalRule": true,
}

// IsBlock reports whether the node's type is a block-level category.
func (n *Node) IsBlock() bool {
	return blockTypes[n.Type]
}

// Decode parses JSON document content into a Node.
//
// Absent content (empty input or JSON null) decodes to a nil node. A bare
// JSON string decodes to a text-only node so that legacy plain-text content
// extracts verbatim. Anything else must be a document object.
func Decode(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return nil, err
		}
		return &Node{Text: text}, nil
	}

	var node Node
	if err := sonic.Unmarshal(trimmed, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Encode serializes a Node back to JSON document content.
func Encode(node *Node) ([]byte, error) {
	return sonic.Marshal(node)
}
