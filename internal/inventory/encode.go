package inventory

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encode renders the inventory as an Ansible YAML document. Groups and hosts
// are emitted in key order.
func Encode(inv *Inventory) ([]byte, error) {
	root := mapping(
		RootGroup, mapping(
			"vars", varsNode(inv.Vars),
			"children", mapping(inv.Service.Name, inv.Service.node()),
		),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, &SerializationError{Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return buf.Bytes(), nil
}

func (sg *ServiceGroup) node() *yaml.Node {
	children := mapping()
	for _, code := range sortedKeys(sg.Datacenters) {
		appendPair(children, code, sg.Datacenters[code].node())
	}
	return mapping("children", children)
}

func (dc *DatacenterGroup) node() *yaml.Node {
	children := mapping()
	for _, name := range sortedKeys(dc.Groups) {
		appendPair(children, name, dc.Groups[name].node())
	}
	return mapping("children", children)
}

func (rg *RoleGroup) node() *yaml.Node {
	return mapping(
		"hosts", varsNode(rg.Hosts),
		"vars", varsNode(rg.Vars),
	)
}

func varsNode(vars map[string]Value) *yaml.Node {
	n := mapping()
	for _, k := range sortedKeys(vars) {
		appendPair(n, k, scalar(vars[k]))
	}
	return n
}

// scalar is the single place where values become YAML. NoValue is written as
// an untagged null; any string, including "", is written as a string so the
// two never share a textual form.
func scalar(v Value) *yaml.Node {
	if v.IsNull() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
	}
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}
	if v.String() == "" || isYAML11Bool(v.String()) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

func key(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if isYAML11Bool(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// yaml11Bools are the words YAML 1.1 parsers (PyYAML, and so Ansible) read
// as booleans. yaml.v3 follows YAML 1.2 and leaves most of them unquoted.
var yaml11Bools = map[string]bool{
	"y": true, "yes": true, "n": true, "no": true,
	"true": true, "false": true, "on": true, "off": true,
}

func isYAML11Bool(s string) bool {
	return yaml11Bools[strings.ToLower(s)]
}

// mapping builds a mapping node from alternating string keys and value nodes.
func mapping(pairs ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		appendPair(n, pairs[i].(string), pairs[i+1].(*yaml.Node))
	}
	return n
}

func appendPair(m *yaml.Node, k string, v *yaml.Node) {
	m.Content = append(m.Content, key(k), v)
}
