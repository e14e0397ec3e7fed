package layout

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

//go:embed static/dashboard.js
var script []byte

// PlotlyURL is where the page loads the charting runtime from.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var page = template.Must(template.New("page.html.tmpl").Funcs(template.FuncMap{
	"json": toJSON,
}).ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	Title     string
	PlotlyURL string
	Root      *Node
}

// Render writes the page for tree.
func Render(w io.Writer, tree *Node) error {
	if tree == nil {
		return fmt.Errorf("render page: nil tree")
	}
	return page.Execute(w, pageData{Title: "Weather Dashboard", PlotlyURL: PlotlyURL, Root: tree})
}

// Script returns the browser glue that posts control events and applies
// chart updates.
func Script() []byte { return script }

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
