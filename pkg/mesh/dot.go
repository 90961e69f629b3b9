package mesh

import (
	"bytes"
	"fmt"

	"meshwalk/pkg/stl"
)

// ToDOT converts the adjacency graph to Graphviz DOT format. Nodes are facet
// indices with their centroid as a tooltip; each adjacency relation appears
// as one undirected edge. The resulting string can be rendered with the
// render package.
func ToDOT(m *stl.Mesh, adj *Adjacency) string {
	var buf bytes.Buffer
	buf.WriteString("graph adjacency {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, fontsize=10, fixedsize=true, width=0.4];\n")
	buf.WriteString("\n")

	for i, f := range m.Facets {
		c := f.Centroid()
		fmt.Fprintf(&buf, "  f%d [label=\"%d\", tooltip=\"(%.4g, %.4g, %.4g)\"];\n",
			i, i, c[0], c[1], c[2])
	}

	buf.WriteString("\n")
	for i := range m.Facets {
		for _, j := range adj.Neighbors(i) {
			if j > i {
				fmt.Fprintf(&buf, "  f%d -- f%d;\n", i, j)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}
