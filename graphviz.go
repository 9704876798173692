package playback

import "github.com/enetx/g"

// layout is the order in which states and their rules are rendered.
var layout = g.SliceOf(StateStopped, StateRunning, StateDownloading, StatePreparing, StatePlaying, StatePaused)

// ToDOT generates a DOT language string representation of the machine for
// visualization. The running substates are drawn inside a cluster and the
// transitions they inherit leave the cluster boundary.
func (m *Machine) ToDOT() g.String {
	snapshot := m.Snapshot()

	b := g.NewBuilder()

	b.WriteString("digraph Playback {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  compound=true;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", snapshot.History[0]))

	b.WriteString(node(StateStopped, snapshot.Current))
	b.WriteString("\n  subgraph cluster_running {\n")
	b.WriteString(g.Format("    label=\"{}\";\n", StateRunning))
	b.WriteString("    style=\"rounded,dashed\";\n")

	for state := range leafStates.Iter() {
		if state.IsRunning() {
			b.WriteString("  " + node(state, snapshot.Current))
		}
	}

	b.WriteString("  }\n\n")

	for from := range layout.Iter() {
		targets := g.NewSlice[State]()
		labels := g.NewMap[State, g.Slice[g.String]]()

		for r := range rules.Get(from).UnwrapOrDefault().Iter() {
			label := g.String(r.event)
			if r.cond != "" {
				label += " [" + r.cond + "]"
			}

			if !labels.Contains(r.to) {
				targets.Push(r.to)
			}

			labels.Entry(r.to).
				AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
				OrInsert(g.SliceOf(label))
		}

		for to := range targets.Iter() {
			b.WriteString(edge(from, to, labels.Get(to).Some()))
		}
	}

	b.WriteString("}\n")

	return b.String()
}

func node(state, current State) g.String {
	var attrs g.Slice[g.String]
	attrs.Push(g.Format("label=\"{}\"", state))

	if state == current {
		attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
	}

	var tooltips g.Slice[g.String]

	for e := range entries.Get(state).UnwrapOrDefault().Iter() {
		if e.via != "" {
			tooltips.Push(g.Format("{} via {}", e.name, e.via))
		} else {
			tooltips.Push(e.name)
		}
	}

	if tooltips.NotEmpty() {
		attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
	}

	return g.Format("  \"{}\" [{}];\n", state, attrs.Join(", "))
}

func edge(from, to State, labels g.Slice[g.String]) g.String {
	var attrs g.Slice[g.String]

	label := labels.Join("\\n")
	attrs.Push(g.Format("label=\" {} \"", label))

	if label.Contains("[") {
		attrs.Push("style=dashed", "color=red", "arrowhead=odiamond")
	}

	tail := from
	if from == StateRunning {
		// Graphviz clusters are not nodes; anchor on a member and clip at the border.
		tail = StateDownloading
		attrs.Push("ltail=\"cluster_running\"")
	}

	return g.Format("  \"{}\" -> \"{}\" [{}];\n", tail, to, attrs.Join(", "))
}
