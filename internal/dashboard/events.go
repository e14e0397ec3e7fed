package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrInvalidEvent is returned for event payloads that cannot be decoded.
var ErrInvalidEvent = errors.New("invalid event")

// EventType discriminates control events on the wire.
type EventType string

const (
	EventDateRangeChanged EventType = "date_range_changed"
	EventDropdownChanged  EventType = "dropdown_changed"
	EventRadioChanged     EventType = "radio_changed"
	EventChartAClicked    EventType = "chart_a_clicked"
	EventChartASelected   EventType = "chart_a_selected"
	EventChartARezoomed   EventType = "chart_a_rezoomed"
	EventChartBRezoomed   EventType = "chart_b_rezoomed"
)

// Event is a control change reported by the browser. The concrete types below
// are the only implementations.
type Event interface {
	Type() EventType
}

// Point is a plotted point reported by a click or selection.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DateRangeChanged fires when the line chart's date picker changes. It carries
// the whole line chart control snapshot.
type DateRangeChanged struct{ Query LineQuery }

// DropdownChanged fires when the line chart's variable selection changes.
type DropdownChanged struct{ Query LineQuery }

// RadioChanged fires when the scatter plot's comparison variable changes.
type RadioChanged struct{ Variable weather.Variable }

// ChartAClicked fires when a point on chart A is clicked.
type ChartAClicked struct{ Point Point }

// ChartASelected fires on a box or lasso selection on chart A. An empty
// Points slice means the selection was cleared.
type ChartASelected struct{ Points []Point }

// ChartARezoomed fires when chart A's axes are zoomed or reset.
type ChartARezoomed struct{}

// ChartBRezoomed fires when chart B's x axis is zoomed. A nil Range means the
// axis was reset to autorange.
type ChartBRezoomed struct{ Range *TimeRange }

func (DateRangeChanged) Type() EventType { return EventDateRangeChanged }
func (DropdownChanged) Type() EventType  { return EventDropdownChanged }
func (RadioChanged) Type() EventType     { return EventRadioChanged }
func (ChartAClicked) Type() EventType    { return EventChartAClicked }
func (ChartASelected) Type() EventType   { return EventChartASelected }
func (ChartARezoomed) Type() EventType   { return EventChartARezoomed }
func (ChartBRezoomed) Type() EventType   { return EventChartBRezoomed }

// wireEvent is the JSON envelope posted by the browser.
type wireEvent struct {
	Type      EventType          `json:"type"`
	Start     string             `json:"start"`
	End       string             `json:"end"`
	Variables []weather.Variable `json:"variables"`
	Variable  weather.Variable   `json:"variable"`
	Points    []Point            `json:"points"`
	Range     []string           `json:"range"`
}

// DecodeEvent parses a JSON event envelope into its concrete Event.
func DecodeEvent(b []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	switch w.Type {
	case EventDateRangeChanged, EventDropdownChanged:
		q, err := w.lineQuery()
		if err != nil {
			return nil, err
		}
		if w.Type == EventDateRangeChanged {
			return DateRangeChanged{Query: q}, nil
		}
		return DropdownChanged{Query: q}, nil
	case EventRadioChanged:
		return RadioChanged{Variable: w.Variable}, nil
	case EventChartAClicked:
		if len(w.Points) == 0 {
			return nil, fmt.Errorf("%w: click without points", ErrInvalidEvent)
		}
		return ChartAClicked{Point: w.Points[0]}, nil
	case EventChartASelected:
		return ChartASelected{Points: w.Points}, nil
	case EventChartARezoomed:
		return ChartARezoomed{}, nil
	case EventChartBRezoomed:
		r, err := w.timeRange()
		if err != nil {
			return nil, err
		}
		return ChartBRezoomed{Range: r}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrInvalidEvent)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, w.Type)
	}
}

func (w wireEvent) lineQuery() (LineQuery, error) {
	if w.Start == "" || w.End == "" {
		return LineQuery{}, fmt.Errorf("%w: start and end are required", ErrInvalidEvent)
	}
	start, err := common.ParseTime(w.Start)
	if err != nil {
		return LineQuery{}, fmt.Errorf("%w: start: %v", ErrInvalidEvent, err)
	}
	end, err := common.ParseTime(w.End)
	if err != nil {
		return LineQuery{}, fmt.Errorf("%w: end: %v", ErrInvalidEvent, err)
	}
	return LineQuery{Start: start, End: end, Variables: w.Variables}, nil
}

func (w wireEvent) timeRange() (*TimeRange, error) {
	switch len(w.Range) {
	case 0:
		return nil, nil
	case 2:
	default:
		return nil, fmt.Errorf("%w: range needs exactly two bounds", ErrInvalidEvent)
	}
	start, err := common.ParseTime(w.Range[0])
	if err != nil {
		return nil, fmt.Errorf("%w: range start: %v", ErrInvalidEvent, err)
	}
	end, err := common.ParseTime(w.Range[1])
	if err != nil {
		return nil, fmt.Errorf("%w: range end: %v", ErrInvalidEvent, err)
	}
	return &TimeRange{Start: start, End: end}, nil
}

// interactionOf maps a cross-filter event to the interaction it represents.
func interactionOf(ev Event) (Interaction, bool) {
	switch e := ev.(type) {
	case ChartAClicked:
		return Interaction{State: PointSelected, X: e.Point.X}, true
	case ChartASelected:
		xs := make([]float64, len(e.Points))
		for i, p := range e.Points {
			xs[i] = p.X
		}
		return Interaction{State: RangeSelected, Xs: xs}, true
	case ChartARezoomed:
		return Interaction{State: AxisRezoomed, Panel: PanelA}, true
	case ChartBRezoomed:
		return Interaction{State: AxisRezoomed, Panel: PanelB, Range: e.Range}, true
	default:
		return Interaction{}, false
	}
}
