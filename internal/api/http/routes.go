package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/export"
	"github.com/i474232898/weather-dashboard/internal/layout"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterRoutes wires the page, the chart API and the operational endpoints
// into the Fiber app. The page is rendered once here.
func RegisterRoutes(app *fiber.App, dash *dashboard.Dashboard, clock clockwork.Clock) error {
	first, last := dash.Dataset().Bounds()
	tree := layout.Build(layout.DefaultSpec(), layout.Bounds{Min: first, Max: last}, dash.InitialFigures())

	var page bytes.Buffer
	if err := layout.Render(&page, tree); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	started := clock.Now()

	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(page.Bytes())
	})

	app.Get("/static/dashboard.js", func(c *fiber.Ctx) error {
		c.Type("js", "utf-8")
		return c.Send(layout.Script())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
			"records": dash.Dataset().Len(),
			"uptime":  clock.Since(started).String(),
			"usage":   dash.Usage(),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	v1.Get("/layout", func(c *fiber.Ctx) error {
		return c.JSON(tree)
	})

	v1.Get("/charts/line", func(c *fiber.Ctx) error {
		q, err := parseLineQuery(c, dash)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		fig, err := dash.Line(q)
		if err != nil {
			return controlError(err)
		}
		return c.JSON(fig)
	})

	v1.Get("/charts/scatter", func(c *fiber.Ctx) error {
		res, err := dash.Scatter(parseScatterQuery(c))
		if err != nil {
			return controlError(err)
		}
		return c.JSON(fiber.Map{
			"figure":      res.Figure,
			"correlation": correlationJSON(res.Correlation),
		})
	})

	v1.Get("/charts/static", func(c *fiber.Ctx) error {
		st := dash.Static()
		return c.JSON(fiber.Map{
			dashboard.ChartBar: st.Bar,
			dashboard.ChartPie: st.Pie,
		})
	})

	v1.Get("/charts/line.png", func(c *fiber.Ctx) error {
		size, err := parseImageSize(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q, err := parseLineQuery(c, dash)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		fig, err := dash.Line(q)
		if err != nil {
			return controlError(err)
		}
		return sendPNG(c, fig, size)
	})

	v1.Get("/charts/scatter.png", func(c *fiber.Ctx) error {
		size, err := parseImageSize(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		res, err := dash.Scatter(parseScatterQuery(c))
		if err != nil {
			return controlError(err)
		}
		return sendPNG(c, res.Figure, size)
	})

	v1.Get("/charts/static.png", func(c *fiber.Ctx) error {
		size, err := parseImageSize(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		st := dash.Static()
		switch id := c.Query("chart", dashboard.ChartBar); id {
		case dashboard.ChartBar:
			return sendPNG(c, st.Bar, size)
		case dashboard.ChartPie:
			return sendPNG(c, st.Pie, size)
		default:
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown static chart %q", id))
		}
	})

	v1.Get("/export/line.xlsx", func(c *fiber.Ctx) error {
		q, err := parseLineQuery(c, dash)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		b, err := export.LineWorkbook(dash.Dataset(), q)
		if err != nil {
			return controlError(err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Attachment(fmt.Sprintf("weather_%s_%s.xlsx", q.Start.Format("20060102"), q.End.Format("20060102")))
		return c.Send(b)
	})

	v1.Post("/events", func(c *fiber.Ctx) error {
		ev, err := dashboard.DecodeEvent(c.Body())
		if err != nil {
			dash.Reject()
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		out, err := dash.Handle(ev)
		if err != nil {
			return controlError(err)
		}
		return c.JSON(fiber.Map{"outputs": out})
	})

	return nil
}

// controlError maps binding errors to HTTP errors.
func controlError(err error) error {
	if errors.Is(err, dashboard.ErrInvalidControl) || errors.Is(err, dashboard.ErrInvalidEvent) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to build chart")
}

// parseLineQuery reads start, end and vars. Missing bounds default to the
// dataset's span and missing vars to the dropdown's initial selection.
func parseLineQuery(c *fiber.Ctx, dash *dashboard.Dashboard) (dashboard.LineQuery, error) {
	first, last := dash.Dataset().Bounds()
	q := dashboard.LineQuery{Start: first, End: last, Variables: weather.DefaultLineVariables}

	if s := c.Query("start"); s != "" {
		ts, err := common.ParseTime(s)
		if err != nil {
			return q, fmt.Errorf("start: %w", err)
		}
		q.Start = ts
	}
	if s := c.Query("end"); s != "" {
		ts, err := common.ParseTime(s)
		if err != nil {
			return q, fmt.Errorf("end: %w", err)
		}
		q.End = ts
	}
	if s := c.Query("vars"); s != "" {
		q.Variables = nil
		for _, v := range strings.Split(s, ",") {
			q.Variables = append(q.Variables, weather.Variable(strings.TrimSpace(v)))
		}
	}
	return q, nil
}

func parseScatterQuery(c *fiber.Ctx) dashboard.ScatterQuery {
	return dashboard.ScatterQuery{
		Variable: weather.Variable(c.Query("var", string(weather.DefaultScatterVariable))),
	}
}

// imageSize holds the optional PNG dimensions.
type imageSize struct {
	Width  int `validate:"min=200,max=4000"`
	Height int `validate:"min=150,max=3000"`
}

func parseImageSize(c *fiber.Ctx) (imageSize, error) {
	size := imageSize{
		Width:  c.QueryInt("width", 1024),
		Height: c.QueryInt("height", 480),
	}
	if err := validate.Struct(size); err != nil {
		return size, err
	}
	return size, nil
}

func sendPNG(c *fiber.Ctx, fig chart.Figure, size imageSize) error {
	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, fig, size.Width, size.Height); err != nil {
		if errors.Is(err, chart.ErrNotEnoughData) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}
	c.Type("png")
	return c.Send(buf.Bytes())
}

// correlationJSON keeps NaN out of the JSON encoder.
func correlationJSON(r float64) any {
	if math.IsNaN(r) {
		return nil
	}
	return r
}
