package chart

import (
	"encoding/json"
	"errors"
)

// Action tells the browser what to do with a chart.
type Action string

const (
	ActionUpdate Action = "update"
	ActionSkip   Action = "skip"
)

// Result is either Update(figure) or Skip. Skip leaves the previously rendered
// chart untouched, which is not the same as redrawing it with the same data.
// The zero value is Skip.
type Result struct {
	updated bool
	figure  Figure
}

// Update returns a Result that redraws the chart with f.
func Update(f Figure) Result { return Result{updated: true, figure: f} }

// Skip returns a Result that leaves the chart as it is.
func Skip() Result { return Result{} }

// Action reports which variant r holds.
func (r Result) Action() Action {
	if r.updated {
		return ActionUpdate
	}
	return ActionSkip
}

// IsSkip reports whether r is Skip.
func (r Result) IsSkip() bool { return !r.updated }

// Figure returns the figure carried by an Update.
func (r Result) Figure() (Figure, bool) {
	return r.figure, r.updated
}

type resultJSON struct {
	Action Action  `json:"action"`
	Figure *Figure `json:"figure,omitempty"`
}

// MarshalJSON encodes r as {"action":"update","figure":{...}} or {"action":"skip"}.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Action: r.Action()}
	if r.updated {
		f := r.figure
		out.Figure = &f
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *Result) UnmarshalJSON(b []byte) error {
	var in resultJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Action {
	case ActionSkip:
		*r = Skip()
	case ActionUpdate:
		if in.Figure == nil {
			return errors.New("update result without figure")
		}
		*r = Update(*in.Figure)
	default:
		return errors.New("unknown result action " + string(in.Action))
	}
	return nil
}
