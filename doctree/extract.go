package doctree

import "strings"

// Extract flattens a document tree into a single plain-text string.
//
// The tree is walked depth-first in document order. A text leaf appends its
// text followed by one space; children of a container are visited in order;
// finishing a block-level node appends one more space. The result is trimmed
// of leading and trailing whitespace.
//
// Extract never fails: a nil node yields the empty string and malformed
// nodes (no text, no children) are skipped. The output is byte-for-byte
// reproducible for identical input.
func Extract(node *Node) string {
	if node == nil {
		return ""
	}

	var sb strings.Builder
	extractInto(&sb, node)
	return strings.TrimSpace(sb.String())
}

func extractInto(sb *strings.Builder, node *Node) {
	if node.Text != "" {
		sb.WriteString(node.Text)
		sb.WriteByte(' ')
	}

	for i := range node.Content {
		extractInto(sb, &node.Content[i])
	}

	if node.IsBlock() {
		sb.WriteByte(' ')
	}
}

// ExtractJSON decodes JSON document content and extracts its plain text.
// Bare-string content is returned verbatim. Malformed content yields the
// empty string; extraction itself has no error conditions, and the pipeline
// treats unreadable content as empty.
func ExtractJSON(data []byte) string {
	node, err := Decode(data)
	if err != nil || node == nil {
		return ""
	}
	if node.Type == "" && len(node.Content) == 0 {
		return node.Text
	}
	return Extract(node)
}
