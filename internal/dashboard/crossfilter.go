package dashboard

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// InteractionState is the kind of interaction that fired last.
type InteractionState int

const (
	Unset InteractionState = iota
	PointSelected
	RangeSelected
	AxisRezoomed
)

func (s InteractionState) String() string {
	switch s {
	case PointSelected:
		return "point_selected"
	case RangeSelected:
		return "range_selected"
	case AxisRezoomed:
		return "axis_rezoomed"
	default:
		return "unset"
	}
}

// Panel identifies one of the two cross-filtering charts.
type Panel int

const (
	PanelA Panel = iota // temperature vs humidity scatter
	PanelB              // wind speed over time
)

// Outcome says which cross-filter chart an interaction redraws.
type Outcome int

const (
	UpdateNeither Outcome = iota
	UpdateA
	UpdateB
)

func (o Outcome) String() string {
	switch o {
	case UpdateA:
		return "update_a"
	case UpdateB:
		return "update_b"
	default:
		return "update_neither"
	}
}

// TimeRange is an inclusive x-axis range on chart B.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Interaction is the last thing that happened on the cross-filter pair.
type Interaction struct {
	State InteractionState
	// Panel is the rezoomed chart when State is AxisRezoomed.
	Panel Panel
	// X is the clicked temperature when State is PointSelected.
	X float64
	// Xs are the selected temperatures when State is RangeSelected.
	Xs []float64
	// Range is chart B's new x range; nil means the axis was reset.
	Range *TimeRange
}

// Transition maps an interaction to the chart it redraws. It depends on
// nothing but its argument.
func Transition(in Interaction) Outcome {
	switch in.State {
	case PointSelected, RangeSelected:
		return UpdateB
	case AxisRezoomed:
		if in.Panel == PanelB {
			return UpdateA
		}
		return UpdateB
	default:
		return UpdateNeither
	}
}

// CrossFilter computes the new state of charts A and B. Exactly one of them is
// updated unless the interaction is Unset, in which case both are skipped.
func CrossFilter(ds *store.Dataset, in Interaction) (a, b chart.Result) {
	switch Transition(in) {
	case UpdateB:
		return chart.Skip(), chart.Update(WindSpeedOverTime(filterByTemperature(ds, in)))
	case UpdateA:
		records := ds.Records()
		if in.Range != nil {
			records = ds.Between(in.Range.Start, in.Range.End)
		}
		return chart.Update(TemperatureHumidity(records)), chart.Skip()
	default:
		return chart.Skip(), chart.Skip()
	}
}

// filterByTemperature restricts chart B to the clicked or selected
// temperatures. An empty selection or a rezoom of chart A keeps every record.
func filterByTemperature(ds *store.Dataset, in Interaction) []weather.Record {
	switch {
	case in.State == PointSelected:
		return ds.WhereIn(weather.VarTemperature, []float64{in.X})
	case in.State == RangeSelected && len(in.Xs) > 0:
		return ds.WhereIn(weather.VarTemperature, in.Xs)
	default:
		return ds.Records()
	}
}
