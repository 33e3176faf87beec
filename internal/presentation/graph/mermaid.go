// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package graph renders module graphs as Mermaid flowcharts.
//
package graph

import (
	"fmt"
	"strings"

	"github.com/db47h/pulsesim"
)

// Overlay contains state data to visualize on the graph.
//
type Overlay struct {
	On     []string // flip-flops currently on
	Target string   // highlighted module
}

// GenerateMermaid produces a Mermaid flowchart from a module graph. Node shapes
// depend on the module kind:
//
//	broadcaster: ((circle))
//	flip-flop:   [rectangle]
//	conjunction: {{hexagon}}
//	sink:        [/parallelogram/]
//
// Flip-flops of each cluster in c are grouped in a subgraph named after the
// cluster key. c may be nil.
//
func GenerateMermaid(g *pulsesim.Graph, c pulsesim.Clusters, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	clustered := make(map[string]bool)
	for _, k := range c.Keys() {
		fmt.Fprintf(&sb, "    subgraph %s [\"cluster %s\"]\n", sanitizeMermaidID("cluster_"+k), k)
		for _, ff := range c[k] {
			clustered[ff] = true
			sb.WriteString("    " + node(ff, pulsesim.FlipFlop))
		}
		sb.WriteString("    end\n")
	}
	for _, m := range g.Modules() {
		if !clustered[m.Name] {
			sb.WriteString(node(m.Name, m.Kind))
		}
	}
	for _, s := range g.Sinks() {
		sb.WriteString(node(s, pulsesim.Untracked))
	}

	for _, m := range g.Modules() {
		from := sanitizeMermaidID(m.Name)
		seen := make(map[string]bool)
		for _, o := range m.Outputs {
			if seen[o] {
				continue
			}
			seen[o] = true
			fmt.Fprintf(&sb, "    %s --> %s\n", from, sanitizeMermaidID(o))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef on fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef target fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, ff := range overlay.On {
			fmt.Fprintf(&sb, "    class %s on;\n", sanitizeMermaidID(ff))
		}
		if overlay.Target != "" {
			fmt.Fprintf(&sb, "    class %s target;\n", sanitizeMermaidID(overlay.Target))
		}
	}
	return sb.String()
}

func node(name string, k pulsesim.Kind) string {
	opener, closer := "[", "]"
	switch k {
	case pulsesim.Broadcaster:
		opener, closer = "((", "))"
	case pulsesim.Conjunction:
		opener, closer = "{{", "}}"
	case pulsesim.Untracked:
		opener, closer = "[/", "/]"
	}
	return fmt.Sprintf("    %s%s\"%s%s\"%s\n", sanitizeMermaidID(name), opener, k.Sigil(), name, closer)
}

// sanitizeMermaidID makes name usable as a Mermaid node id. "end" is a
// reserved word.
func sanitizeMermaidID(name string) string {
	s := strings.ReplaceAll(name, "-", "_")
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}
