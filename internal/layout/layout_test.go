package layout

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

var testBounds = Bounds{
	Min: time.Date(2006, 4, 1, 0, 0, 0, 0, time.UTC),
	Max: time.Date(2016, 9, 9, 23, 0, 0, 0, time.UTC),
}

func TestBuild_Tabs(t *testing.T) {
	root := Build(DefaultSpec(), testBounds, nil)

	require.Equal(t, KindApp, root.Kind)
	require.Len(t, root.Children, 2)
	tabs := root.Children[0]
	assert.Equal(t, KindTabs, tabs.Kind)

	var labels []string
	for _, tab := range tabs.Children {
		labels = append(labels, tab.Label)
		require.NotEmpty(t, tab.Children)
		assert.Equal(t, KindTitle, tab.Children[0].Kind)
		assert.Equal(t, tab.Label, tab.Children[0].Text)
	}
	assert.Equal(t, []string{"Line Chart", "Scatter Plot", "Interactive Charts", "Custom Graph"}, labels)

	footer := root.Children[1]
	assert.Equal(t, KindFooter, footer.Kind)
	assert.Contains(t, footer.Text, "Created by")
}

func TestBuild_Controls(t *testing.T) {
	root := Build(DefaultSpec(), testBounds, nil)

	picker := root.Find("line-chart-date-picker")
	require.NotNil(t, picker)
	require.NotNil(t, picker.Picker)
	assert.Equal(t, DatePicker{
		Min:           "2006-04-01",
		Max:           "2016-09-09",
		Start:         "2006-04-01",
		End:           "2016-09-09",
		MinTS:         "2006-04-01T00:00:00Z",
		MaxTS:         "2016-09-09T23:00:00Z",
		DisplayFormat: "DD/MM/YYYY",
	}, *picker.Picker)

	dropdown := root.Find("line-chart-dropdown")
	require.NotNil(t, dropdown)
	assert.True(t, dropdown.Multi)
	assert.Len(t, dropdown.Options, 4)
	assert.Equal(t, Option{Label: "Wind Speed (km/h)", Value: "wind_speed"}, dropdown.Options[1])
	assert.Equal(t, []string{"temperature", "wind_bearing"}, dropdown.Selected)

	radio := root.Find("scatter-plot-radio")
	require.NotNil(t, radio)
	assert.False(t, radio.Multi)
	assert.Len(t, radio.Options, 3)
	assert.Equal(t, []string{"temperature"}, radio.Selected)
	assert.True(t, radio.IsSelected("temperature"))
	assert.False(t, radio.IsSelected("humidity"))
}

func TestBuild_ChartPlaceholdersMatchBindings(t *testing.T) {
	root := Build(DefaultSpec(), testBounds, nil)

	for _, id := range []string{
		dashboard.ChartLine, dashboard.ChartScatter,
		dashboard.ChartA, dashboard.ChartB,
		dashboard.ChartBar, dashboard.ChartPie,
	} {
		n := root.Find(id)
		require.NotNil(t, n, id)
		assert.Equal(t, KindChart, n.Kind)
		assert.Nil(t, n.Figure)
	}
	assert.Nil(t, root.Find("missing"))
}

func TestBuild_InitialFigures(t *testing.T) {
	bar := chart.New("Humidity Vs Weather Summary", "Summary", "Humidity",
		chart.Bar("Humidity", []string{"Clear"}, []float64{0.5}))

	root := Build(DefaultSpec(), testBounds, Figures{dashboard.ChartBar: bar})

	n := root.Find(dashboard.ChartBar)
	require.NotNil(t, n.Figure)
	assert.Equal(t, "Humidity Vs Weather Summary", n.Figure.Title())
	assert.Nil(t, root.Find(dashboard.ChartPie).Figure)
}

func TestBuild_TreeIsJSON(t *testing.T) {
	b, err := json.Marshal(Build(DefaultSpec(), testBounds, nil))
	require.NoError(t, err)

	var decoded Node
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, KindApp, decoded.Kind)
	assert.NotNil(t, decoded.Find("chart-b"))
}

func TestRender(t *testing.T) {
	pie := chart.New("Temperature Against to the Summary", "", "",
		chart.Pie("Temperature (C)", []string{"<Clear>"}, []float64{9.4}))
	root := Build(DefaultSpec(), testBounds, Figures{dashboard.ChartPie: pie})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, root))
	html := buf.String()

	assert.Contains(t, html, PlotlyURL)
	assert.Contains(t, html, `<script src="/static/dashboard.js"></script>`)
	assert.Contains(t, html, `id="line-chart"`)
	assert.Contains(t, html, `id="chart-a"`)
	assert.Contains(t, html, `min="2006-04-01"`)
	assert.Contains(t, html, `data-max-ts="2016-09-09T23:00:00Z"`)
	assert.Contains(t, html, `<option value="temperature" selected>Temperature (C)</option>`)
	assert.Contains(t, html, `<option value="pressure">Pressure (millibars)</option>`)
	assert.Contains(t, html, `value="temperature" checked`)
	assert.Contains(t, html, "<footer>Created by")
	assert.Contains(t, html, `data-figure=`)
	assert.Equal(t, 8, strings.Count(html, "data-tab="))
	assert.NotContains(t, html, "<Clear>")
}

func TestRender_NilTree(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, nil))
}

func TestScript(t *testing.T) {
	js := string(Script())
	assert.Contains(t, js, "/api/v1/events")
	assert.Contains(t, js, "chart_b_rezoomed")
	assert.Contains(t, js, "dataset.maxTs")
	assert.Contains(t, js, "function isAxisChange(ev)")
}
