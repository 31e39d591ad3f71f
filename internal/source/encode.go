package source

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"pdfcal/internal/model"
)

// WriteEvents writes ev in the format LoadEvents reads, keeping the order of
// entries within each day.
func WriteEvents(w io.Writer, ev model.Events) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, year := range sortedInts(ev) {
		months := &yaml.Node{Kind: yaml.MappingNode}
		for _, month := range sortedInts(ev[year]) {
			days, err := encodeDays(ev[year][month])
			if err != nil {
				return err
			}
			months.Content = append(months.Content, intKey(month), days)
		}
		root.Content = append(root.Content, intKey(year), months)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("source: encode events: %w", err)
	}
	return enc.Close()
}

func encodeDays(days model.MonthEvents) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, day := range sortedInts(days) {
		entries := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range days[day] {
			var style yaml.Node
			if err := style.Encode(e.Style); err != nil {
				return nil, fmt.Errorf("source: encode style of %q: %w", e.Text, err)
			}
			style.Style = yaml.FlowStyle
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Text}
			if strings.Contains(e.Text, "\n") {
				key.Style = yaml.DoubleQuotedStyle
			}
			entries.Content = append(entries.Content, key, &style)
		}
		n.Content = append(n.Content, intKey(day), entries)
	}
	return n, nil
}

func intKey(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func sortedInts[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
