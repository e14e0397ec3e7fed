package chart

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_ZeroValueIsSkip(t *testing.T) {
	var r Result
	assert.True(t, r.IsSkip())
	assert.Equal(t, ActionSkip, r.Action())

	_, ok := r.Figure()
	assert.False(t, ok)
}

func TestResult_JSON(t *testing.T) {
	b, err := json.Marshal(Skip())
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"skip"}`, string(b))

	fig := New("Title", "", "", Markers("pts", []float64{1}, []float64{2}))
	b, err = json.Marshal(Update(fig))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"update","figure":{"data":[{"type":"scatter","mode":"markers","name":"pts","x":[1],"y":[2]}],"layout":{"title":{"text":"Title"}}}}`, string(b))

	var back Result
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ActionUpdate, back.Action())
	got, ok := back.Figure()
	require.True(t, ok)
	assert.Equal(t, "Title", got.Title())

	assert.Error(t, json.Unmarshal([]byte(`{"action":"redraw"}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"action":"update"}`), &back))
}

func TestFigure_Points(t *testing.T) {
	f := New("", "x", "y",
		Line("a", []string{"t1", "t2"}, []float64{1, 2}),
		Line("b", nil, nil),
	)
	assert.Equal(t, 2, f.Points())
	assert.Equal(t, []string{}, f.Data[1].X)
	assert.Equal(t, "x", f.Layout.XAxis.Title.Text)

	pie := New("", "", "", Pie("p", []string{"a", "b", "c"}, []float64{1, 2, 3}))
	assert.Equal(t, 3, pie.Points())
}

func TestFigure_EmptyFigureHasDataArray(t *testing.T) {
	b, err := json.Marshal(New("", "", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"layout":{}}`, string(b))
}

func TestRenderPNG(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	t.Run("time series", func(t *testing.T) {
		f := New("Line", "Date", "Value", Line("temp",
			[]string{"2006-04-01T00:00:00Z", "2006-04-01T01:00:00Z", "2006-04-01T02:00:00Z"},
			[]float64{9.4, 9.3, 9.1},
		))
		var buf bytes.Buffer
		require.NoError(t, RenderPNG(&buf, f, 640, 360))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	})

	t.Run("scatter", func(t *testing.T) {
		f := New("Scatter", "Wind", "Temp", Markers("", []float64{1, 2, 3}, []float64{3, 1, 2}))
		var buf bytes.Buffer
		require.NoError(t, RenderPNG(&buf, f, 640, 360))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, RenderPNG(&buf, New("", "", ""), 640, 360), ErrNotEnoughData)
		assert.ErrorIs(t, RenderPNG(&buf, New("", "", "", Line("a", nil, nil)), 640, 360), ErrNotEnoughData)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		f := New("", "", "", Line("a", []string{"x", "y"}, []float64{1, 2}))
		var buf bytes.Buffer
		assert.ErrorIs(t, RenderPNG(&buf, f, 640, 360), ErrUnsupported)
	})
}
