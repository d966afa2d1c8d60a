// Package yaml provides the YAML format handler for fil.
package yaml

import (
	"bytes"
	"maps"
	"slices"
	"strings"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/thirteen37/fil/internal/format"
)

// Handler implements format.Handler for YAML files.
type Handler struct{}

// New creates a new YAML handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the canonical format name.
func (h *Handler) Name() string { return "yaml" }

// Extensions returns the extensions served by this handler.
func (h *Handler) Extensions() []string { return []string{".yaml", ".yml"} }

// LineOriented reports false; a YAML file holds a single document.
func (h *Handler) LineOriented() bool { return false }

// Decode parses YAML bytes and returns a generic value. With opts.Ordered,
// mappings decode through the yaml.Node tree into *orderedmap.OrderedMap so
// key order follows the document. An empty document decodes to nil.
func (h *Handler) Decode(data []byte, opts format.DecodeOptions) (any, error) {
	if opts.Ordered {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		if root.Kind == 0 {
			// Empty document
			return nil, nil
		}
		return convertFromNode(&root)
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// convertFromNode recursively converts a yaml.Node tree to generic values,
// keeping mapping key order.
func convertFromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertFromNode(n.Content[0])
	case yaml.MappingNode:
		result := orderedmap.New()
		// Mapping content alternates key and value nodes
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			val, err := convertFromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			result.Set(key, val)
		}
		return result, nil
	case yaml.SequenceNode:
		result := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := convertFromNode(item)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil
	case yaml.AliasNode:
		return convertFromNode(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Encode writes the value to YAML bytes. OrderedMap values keep their key
// order by being built into a yaml.Node tree first; plain maps marshal in
// yaml.v3's default sorted order.
func (h *Handler) Encode(v any, opts format.EncodeOptions) ([]byte, error) {
	node, err := convertToNode(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	if n := spacesIndent(opts.Indent); n > 0 {
		encoder.SetIndent(n)
	}
	if err := encoder.Encode(node); err != nil {
		encoder.Close()
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// convertToNode builds a yaml.Node tree, expanding OrderedMap containers in
// key order and handing everything else to yaml.v3's own encoder.
func convertToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *orderedmap.OrderedMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range val.Keys() {
			child, _ := val.Get(k)
			childNode, err := convertToNode(child)
			if err != nil {
				return nil, err
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			node.Content = append(node.Content, keyNode, childNode)
		}
		return node, nil
	case orderedmap.OrderedMap:
		return convertToNode(&val)
	case map[string]any:
		// Recurse so OrderedMap values nested under plain maps keep their
		// order; the map's own keys sort, as yaml.v3 would sort them.
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range slices.Sorted(maps.Keys(val)) {
			childNode, err := convertToNode(val[k])
			if err != nil {
				return nil, err
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			node.Content = append(node.Content, keyNode, childNode)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			childNode, err := convertToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, childNode)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// spacesIndent converts an indent string to the space count that yaml.v3's
// SetIndent takes. Returns 0 (keep the encoder default) for indents that are
// empty or not all spaces.
func spacesIndent(indent string) int {
	if indent == "" || strings.Trim(indent, " ") != "" {
		return 0
	}
	return len(indent)
}

// Ensure Handler implements format.Handler.
var _ format.Handler = (*Handler)(nil)
