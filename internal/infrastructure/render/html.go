package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"

	"github.com/felixgeelhaar/boardpulse/pkg/application"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/board"
	"github.com/felixgeelhaar/boardpulse/pkg/domain/metrics"
)

// HTMLRenderer produces a self-contained dashboard page: summary cards
// with severity colouring, four Chart.js charts (status pie, priority bar,
// planned vs unplanned doughnut, team workload) and the full item table.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Extension() string { return "html" }

var priorityColors = map[board.Priority]string{
	board.PriorityUrgent: "#ef4444",
	board.PriorityP0:     "#f97316",
	board.PriorityP1:     "#eab308",
	board.PriorityP2:     "#3b82f6",
}

var bandColors = map[metrics.Band]string{
	metrics.BandGood: "#22c55e",
	metrics.BandWarn: "#eab308",
	metrics.BandBad:  "#ef4444",
}

// chartData is one dataset handed to Chart.js.
type chartData struct {
	Labels []string  `json:"labels"`
	Values []int     `json:"values"`
	Colors []string  `json:"colors,omitempty"`
	Hours  []float64 `json:"hours,omitempty"`
}

type summaryCard struct {
	Label string
	Value string
	Color string
}

type htmlView struct {
	Project     board.Project
	GeneratedAt string
	Cards       []summaryCard
	Items       []board.WorkItem
	Diff        diffView

	StatusChart   template.JS
	PriorityChart template.JS
	PlanningChart template.JS
	WorkloadChart template.JS
}

type diffView struct {
	HasChanges  bool
	Added       int
	Completed   int
	Transitions []transitionView
}

type transitionView struct {
	Title string
	From  string
	To    string
}

func (r *HTMLRenderer) Render(report application.Report) ([]byte, error) {
	view, err := buildView(report)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute html template: %w", err)
	}
	return buf.Bytes(), nil
}

func buildView(report application.Report) (htmlView, error) {
	m := report.Metrics
	p := report.Policies

	view := htmlView{
		Project:     report.Project,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05"),
		Items:       report.Items,
		Cards: []summaryCard{
			{Label: "Total Items", Value: fmt.Sprintf("%d", m.TotalItems)},
			{Label: "Total Estimate (h)", Value: fmt.Sprintf("%g", m.TotalEstimateHours)},
			{
				Label: "Completion",
				Value: formatPct(m.CompletionPct),
				Color: bandColors[metrics.Classify(m.CompletionPct, p.Completion)],
			},
			{
				Label: "Unplanned",
				Value: formatPct(m.UnplannedPct),
				Color: bandColors[metrics.Classify(m.UnplannedPct, p.Unplanned)],
			},
			{
				Label: "High-Priority Not Started",
				Value: fmt.Sprintf("%d", m.HighPriorityNotStarted),
				Color: bandColors[metrics.Classify(float64(m.HighPriorityNotStarted), p.HighPriorityNotStarted)],
			},
			{Label: "Unassigned", Value: fmt.Sprintf("%d", m.UnassignedCount)},
		},
		Diff: diffView{
			HasChanges: report.Diff.HasChanges(),
			Added:      report.Diff.Added,
			Completed:  report.Diff.Completed,
		},
	}

	for _, t := range report.Diff.Transitions {
		view.Diff.Transitions = append(view.Diff.Transitions, transitionView{
			Title: t.Title,
			From:  t.From.DisplayName(),
			To:    t.To.DisplayName(),
		})
	}

	var err error
	if view.StatusChart, err = statusChart(m); err != nil {
		return htmlView{}, err
	}
	if view.PriorityChart, err = priorityChart(m); err != nil {
		return htmlView{}, err
	}
	if view.PlanningChart, err = planningChart(m); err != nil {
		return htmlView{}, err
	}
	if view.WorkloadChart, err = workloadChart(m); err != nil {
		return htmlView{}, err
	}

	return view, nil
}

func statusChart(m metrics.Record) (template.JS, error) {
	data := chartData{}
	for _, status := range board.AllStatuses() {
		if count := m.ByStatus[status]; count > 0 {
			data.Labels = append(data.Labels, status.DisplayName())
			data.Values = append(data.Values, count)
		}
	}
	return marshalChart(data)
}

func priorityChart(m metrics.Record) (template.JS, error) {
	data := chartData{}
	for _, priority := range board.AllPriorities() {
		if count := m.ByPriority[priority]; count > 0 {
			data.Labels = append(data.Labels, priority.DisplayName())
			data.Values = append(data.Values, count)
			data.Colors = append(data.Colors, priorityColors[priority])
		}
	}
	return marshalChart(data)
}

func planningChart(m metrics.Record) (template.JS, error) {
	return marshalChart(chartData{
		Labels: []string{"Planned", "Unplanned"},
		Values: []int{m.PlannedCount, m.UnplannedCount},
		Colors: []string{"#3b82f6", "#ef4444"},
	})
}

// workloadChart shows active item count and estimate hours per assignee,
// sorted by load so the busiest person is first.
func workloadChart(m metrics.Record) (template.JS, error) {
	assignees := make([]string, 0, len(m.ByAssignee))
	for assignee := range m.ByAssignee {
		assignees = append(assignees, assignee)
	}
	sort.Slice(assignees, func(i, j int) bool {
		a, b := m.ByAssignee[assignees[i]], m.ByAssignee[assignees[j]]
		if a.ActiveCount != b.ActiveCount {
			return a.ActiveCount > b.ActiveCount
		}
		return assignees[i] < assignees[j]
	})

	data := chartData{}
	for _, assignee := range assignees {
		load := m.ByAssignee[assignee]
		data.Labels = append(data.Labels, assignee)
		data.Values = append(data.Values, load.ActiveCount)
		data.Hours = append(data.Hours, load.EstimateHours)
	}
	return marshalChart(data)
}

func marshalChart(data chartData) (template.JS, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal chart data: %w", err)
	}
	return template.JS(encoded), nil // #nosec G203 -- encoded from typed data, not user HTML
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"assignees": func(item board.WorkItem) string { return joinOr(item.Assignees, "-") },
	"labels":    func(item board.WorkItem) string { return joinOr(item.Labels, "-") },
	"estimate":  func(item board.WorkItem) string { return formatEstimate(item.Estimate, "-") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Project Report: {{.Project.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; background: #f8fafc; color: #0f172a; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #64748b; margin-bottom: 2rem; }
  .cards { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 2rem; }
  .card { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; box-shadow: 0 1px 3px rgba(0,0,0,.1); min-width: 10rem; }
  .card .label { font-size: .8rem; color: #64748b; text-transform: uppercase; }
  .card .value { font-size: 1.6rem; font-weight: 600; }
  .charts { display: grid; grid-template-columns: repeat(auto-fit, minmax(22rem, 1fr)); gap: 1.5rem; margin-bottom: 2rem; }
  .chart { background: #fff; border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  table { width: 100%; border-collapse: collapse; background: #fff; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
  th, td { text-align: left; padding: .5rem .75rem; border-bottom: 1px solid #e2e8f0; }
  th { background: #f1f5f9; font-size: .8rem; text-transform: uppercase; color: #475569; }
  .changes { background: #fff; border-radius: 8px; padding: 1rem 1.5rem; margin-bottom: 2rem; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
</style>
</head>
<body>
<h1>Project Report: {{.Project.Title}}</h1>
<p class="meta">{{.Project.Owner}} / #{{.Project.Number}} &middot; generated {{.GeneratedAt}}</p>

<div class="cards">
{{range .Cards}}  <div class="card">
    <div class="label">{{.Label}}</div>
    <div class="value"{{if .Color}} style="color: {{.Color}}"{{end}}>{{.Value}}</div>
  </div>
{{end}}</div>

{{if .Diff.HasChanges}}<div class="changes">
  <h2>Changes Since Last Snapshot</h2>
  <p>{{.Diff.Added}} new &middot; {{.Diff.Completed}} completed</p>
  {{if .Diff.Transitions}}<ul>
  {{range .Diff.Transitions}}<li>{{.Title}}: {{.From}} &rarr; {{.To}}</li>
  {{end}}</ul>{{end}}
</div>{{end}}

<div class="charts">
  <div class="chart"><h2>Status</h2><canvas id="status-chart"></canvas></div>
  <div class="chart"><h2>Priority (active)</h2><canvas id="priority-chart"></canvas></div>
  <div class="chart"><h2>Planned vs Unplanned</h2><canvas id="planning-chart"></canvas></div>
  <div class="chart"><h2>Team Workload</h2><canvas id="workload-chart"></canvas></div>
</div>

<h2>All Items</h2>
<table>
<thead><tr><th>Title</th><th>Status</th><th>Priority</th><th>Assignees</th><th>Estimate</th><th>Labels</th></tr></thead>
<tbody>
{{range .Items}}<tr>
  <td>{{if .URL}}<a href="{{.URL}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</td>
  <td>{{.Status.DisplayName}}</td>
  <td>{{.Priority.DisplayName}}</td>
  <td>{{assignees .}}</td>
  <td>{{estimate .}}</td>
  <td>{{labels .}}</td>
</tr>
{{end}}</tbody>
</table>

<script>
const statusData = {{.StatusChart}};
const priorityData = {{.PriorityChart}};
const planningData = {{.PlanningChart}};
const workloadData = {{.WorkloadChart}};

new Chart(document.getElementById("status-chart"), {
  type: "pie",
  data: { labels: statusData.labels, datasets: [{ data: statusData.values }] },
});
new Chart(document.getElementById("priority-chart"), {
  type: "bar",
  data: { labels: priorityData.labels, datasets: [{ data: priorityData.values, backgroundColor: priorityData.colors }] },
  options: { indexAxis: "y", plugins: { legend: { display: false } } },
});
new Chart(document.getElementById("planning-chart"), {
  type: "doughnut",
  data: { labels: planningData.labels, datasets: [{ data: planningData.values, backgroundColor: planningData.colors }] },
});
new Chart(document.getElementById("workload-chart"), {
  type: "bar",
  data: {
    labels: workloadData.labels,
    datasets: [
      { label: "Active items", data: workloadData.values },
      { label: "Estimate (h)", data: workloadData.hours },
    ],
  },
});
</script>
</body>
</html>
`))
