package present

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
)

// htmlEntry is one flat's row in the web view.
type htmlEntry struct {
	Name     string
	Nickname string
	Color    string
	Action   string
	Clean    bool
}

// htmlDay is one day's section in the web view.
type htmlDay struct {
	Heading string
	Entries []htmlEntry
}

type htmlPage struct {
	Title   string
	Days    []htmlDay
	Empty   bool
	Window  int
	MaxDays int
}

var pageTemplate = template.Must(template.New("schedule").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 1rem; max-width: 40rem; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: .2rem; }
.flat { padding: .4rem .6rem; margin: .3rem 0; border-left: 6px solid #999; }
.clean { font-weight: bold; }
.empty { color: #666; }
form { margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="get" action="/">
<label>Days: <input type="number" name="days" value="{{.Window}}" min="1" max="{{.MaxDays}}"></label>
<button type="submit">Show</button>
</form>
{{if .Empty}}
<p class="empty">No check-ins or check-outs in the selected window. Try widening the window.</p>
{{else}}
{{range .Days}}
<h2>{{.Heading}}</h2>
{{range .Entries}}
<div class="flat{{if .Clean}} clean{{end}}" style="border-left-color: {{.Color}}">
{{.Name}}{{if ne .Nickname .Name}} ({{.Nickname}}){{end}} &mdash; {{.Action}}
</div>
{{end}}
{{end}}
{{end}}
</body>
</html>
`))

// HTML writes the cleaner's schedule page. window and maxDays feed the
// day-count form control.
func HTML(w io.Writer, s booking.Schedule, flats []config.FlatConfig, window, maxDays int) error {
	page := htmlPage{
		Title:   "Cleaner Schedule",
		Empty:   s.IsEmpty(),
		Window:  window,
		MaxDays: maxDays,
	}

	for _, d := range s.Days() {
		day := htmlDay{Heading: d.Time(time.UTC).Format("Monday 02 January")}
		for _, e := range DayEntries(s, d, flats) {
			color := e.Color
			if color == "" {
				color = "#999999"
			}
			day.Entries = append(day.Entries, htmlEntry{
				Name:     e.Name,
				Nickname: e.Nickname,
				Color:    color,
				Action:   htmlAction(e.Status),
				Clean:    e.Status.RequiresCleaning(),
			})
		}
		page.Days = append(page.Days, day)
	}

	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("rendering schedule page: %w", err)
	}
	return nil
}

// htmlAction maps a status to the web view action text.
func htmlAction(st booking.Status) string {
	switch st {
	case booking.StatusTurnover:
		return "Check-out, clean, then check-in (same day)"
	case booking.StatusCheckOut:
		return "Check-out, then clean"
	case booking.StatusCheckIn:
		return "Check-in"
	default:
		return ""
	}
}
