// Package source loads event files. Files are YAML or JSON (JSON is read with
// the YAML decoder) and are walked as yaml.Node trees so that the order of
// events inside a day is the order they appear in the file.
package source

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	appLog "pdfcal/internal/log"
	"pdfcal/internal/model"
)

// LoadEvents reads a year -> month -> day -> text -> style file.
func LoadEvents(path string) (model.Events, error) {
	root, err := readMapping(path)
	if err != nil {
		return nil, err
	}

	ev := model.Events{}
	count := 0
	err = eachPair(root, "year", func(year int, months *yaml.Node) error {
		return eachPair(months, "month", func(month int, days *yaml.Node) error {
			return eachPair(days, "day", func(day int, entries *yaml.Node) error {
				return eachEntry(entries, func(e model.Entry) {
					ev.Add(year, month, day, e)
					count++
				})
			})
		})
	})
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}

	appLog.Debug("events file loaded", "path", path, "entries", count)
	return ev, nil
}

// LoadYearly reads a month -> day -> text -> style file whose entries repeat
// every year.
func LoadYearly(path string) (model.Yearly, error) {
	root, err := readMapping(path)
	if err != nil {
		return nil, err
	}

	y := model.Yearly{}
	count := 0
	err = eachPair(root, "month", func(month int, days *yaml.Node) error {
		return eachPair(days, "day", func(day int, entries *yaml.Node) error {
			return eachEntry(entries, func(e model.Entry) {
				y.Add(month, day, e)
				count++
			})
		})
	})
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}

	appLog.Debug("yearly file loaded", "path", path, "entries", count)
	return y, nil
}

func readMapping(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", path, err)
	}
	// An empty file decodes to a zero node.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	root := doc.Content[0]
	if isNull(root) {
		return &yaml.Node{Kind: yaml.MappingNode}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("source: %s: line %d: expected a mapping at the top level", path, root.Line)
	}
	return root, nil
}

// eachPair walks a mapping whose keys are integers.
func eachPair(n *yaml.Node, what string, fn func(key int, value *yaml.Node) error) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of %ss", n.Line, what)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		key, err := strconv.Atoi(k.Value)
		if err != nil {
			return fmt.Errorf("line %d: %s key %q is not an integer", k.Line, what, k.Value)
		}
		if err := fn(key, v); err != nil {
			return err
		}
	}
	return nil
}

// eachEntry walks the events of one day: either a text -> style mapping, or a
// plain list of texts using the default style.
func eachEntry(n *yaml.Node, fn func(model.Entry)) error {
	if isNull(n) {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			e := model.Entry{Text: k.Value}
			if !isNull(v) {
				if err := v.Decode(&e.Style); err != nil {
					return fmt.Errorf("line %d: style of %q: %w", v.Line, k.Value, err)
				}
			}
			fn(e)
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected event text", item.Line)
			}
			fn(model.Entry{Text: item.Value})
		}
	default:
		return fmt.Errorf("line %d: expected events as a mapping or list", n.Line)
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}
