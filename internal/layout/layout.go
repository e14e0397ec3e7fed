// Package layout declares the dashboard's widget tree and renders it as an
// HTML page.
package layout

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Kind is the widget type of a Node.
type Kind string

const (
	KindApp       Kind = "app"
	KindTabs      Kind = "tabs"
	KindTab       Kind = "tab"
	KindTitle     Kind = "title"
	KindDateRange Kind = "date_range"
	KindDropdown  Kind = "dropdown"
	KindRadio     Kind = "radio"
	KindGroup     Kind = "group"
	KindChart     Kind = "chart"
	KindFooter    Kind = "footer"
)

// dateFormat is how picker bounds are written into the page.
const dateFormat = "2006-01-02"

// Option is one choice of a dropdown or radio widget.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Node is one widget of the view tree.
type Node struct {
	Kind     Kind          `json:"kind"`
	ID       string        `json:"id,omitempty"`
	Class    string        `json:"class,omitempty"`
	Label    string        `json:"label,omitempty"`
	Text     string        `json:"text,omitempty"`
	Options  []Option      `json:"options,omitempty"`
	Selected []string      `json:"selected,omitempty"`
	Multi    bool          `json:"multi,omitempty"`
	Picker   *DatePicker   `json:"picker,omitempty"`
	Figure   *chart.Figure `json:"figure,omitempty"`
	Children []*Node       `json:"children,omitempty"`
}

// DatePicker carries the bounds and initial selection of a date-range picker.
// MinTS and MaxTS are the exact dataset bounds; the first line-chart event
// sends them so the initial chart covers the whole last day.
type DatePicker struct {
	Min           string `json:"min"`
	Max           string `json:"max"`
	Start         string `json:"start"`
	End           string `json:"end"`
	MinTS         string `json:"minTs"`
	MaxTS         string `json:"maxTs"`
	DisplayFormat string `json:"displayFormat"`
}

// Bounds is the dataset's time span.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// Figures holds initial figures keyed by chart id.
type Figures map[string]chart.Figure

// WidgetSpec declares one control or chart placeholder.
type WidgetSpec struct {
	Kind     Kind
	ID       string
	Class    string
	Options  []weather.Variable
	Selected []weather.Variable
	Multi    bool
	// Group nests the widgets in a container with Class.
	Group []WidgetSpec
}

// TabSpec declares one tab. The label doubles as the section title.
type TabSpec struct {
	Label   string
	Widgets []WidgetSpec
}

// Spec is the static description of the page.
type Spec struct {
	Tabs   []TabSpec
	Footer string
}

// DefaultSpec is the weather dashboard's page.
func DefaultSpec() Spec {
	return Spec{
		Tabs: []TabSpec{
			{
				Label: "Line Chart",
				Widgets: []WidgetSpec{
					{Kind: KindDateRange, ID: "line-chart-date-picker"},
					{
						Kind:     KindDropdown,
						ID:       "line-chart-dropdown",
						Class:    "dropdown",
						Options:  weather.LineVariables,
						Selected: weather.DefaultLineVariables,
						Multi:    true,
					},
					{Kind: KindChart, ID: "line-chart", Class: "chart"},
				},
			},
			{
				Label: "Scatter Plot",
				Widgets: []WidgetSpec{
					{
						Kind:     KindRadio,
						ID:       "scatter-plot-radio",
						Class:    "radio-items",
						Options:  weather.ScatterVariables,
						Selected: []weather.Variable{weather.DefaultScatterVariable},
					},
					{Kind: KindChart, ID: "scatter-plot", Class: "chart"},
				},
			},
			{
				Label: "Interactive Charts",
				Widgets: []WidgetSpec{
					{
						Kind:  KindGroup,
						Class: "interactive-charts-container",
						Group: []WidgetSpec{
							{Kind: KindChart, ID: "chart-a", Class: "chart"},
							{Kind: KindChart, ID: "chart-b", Class: "chart"},
						},
					},
				},
			},
			{
				Label: "Custom Graph",
				Widgets: []WidgetSpec{
					{Kind: KindChart, ID: "custom-chart", Class: "chart"},
					{Kind: KindChart, ID: "custom-pie-chart", Class: "chart"},
				},
			},
		},
		Footer: "Created by: Sandali Minoli Hemachandra (Index: cohndds23.2f-022)",
	}
}

// Build turns spec into a widget tree. The date picker spans bounds and
// charts listed in figs start with that figure.
func Build(spec Spec, bounds Bounds, figs Figures) *Node {
	tabs := &Node{Kind: KindTabs, Class: "dash-tabs"}
	for _, ts := range spec.Tabs {
		tab := &Node{Kind: KindTab, Label: ts.Label}
		tab.Children = append(tab.Children, &Node{Kind: KindTitle, Class: "section-title", Text: ts.Label})
		for _, w := range ts.Widgets {
			tab.Children = append(tab.Children, buildWidget(w, bounds, figs))
		}
		tabs.Children = append(tabs.Children, tab)
	}

	root := &Node{Kind: KindApp, Class: "app-container", Children: []*Node{tabs}}
	if spec.Footer != "" {
		root.Children = append(root.Children, &Node{Kind: KindFooter, Text: spec.Footer})
	}
	return root
}

func buildWidget(w WidgetSpec, bounds Bounds, figs Figures) *Node {
	n := &Node{Kind: w.Kind, ID: w.ID, Class: w.Class, Multi: w.Multi}

	switch w.Kind {
	case KindDateRange:
		n.Picker = &DatePicker{
			Min:           bounds.Min.Format(dateFormat),
			Max:           bounds.Max.Format(dateFormat),
			Start:         bounds.Min.Format(dateFormat),
			End:           bounds.Max.Format(dateFormat),
			MinTS:         bounds.Min.UTC().Format(time.RFC3339),
			MaxTS:         bounds.Max.UTC().Format(time.RFC3339),
			DisplayFormat: "DD/MM/YYYY",
		}
	case KindDropdown, KindRadio:
		for _, v := range w.Options {
			n.Options = append(n.Options, Option{Label: v.Label(), Value: string(v)})
		}
		for _, v := range w.Selected {
			n.Selected = append(n.Selected, string(v))
		}
	case KindChart:
		if fig, ok := figs[w.ID]; ok {
			n.Figure = &fig
		}
	case KindGroup:
		for _, child := range w.Group {
			n.Children = append(n.Children, buildWidget(child, bounds, figs))
		}
	}
	return n
}

// Find returns the first node with id, or nil.
func (n *Node) Find(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// IsSelected reports whether value is among the node's selected values.
func (n *Node) IsSelected(value string) bool {
	for _, s := range n.Selected {
		if s == value {
			return true
		}
	}
	return false
}
