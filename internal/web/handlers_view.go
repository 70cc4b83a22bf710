package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"hgbdice/internal/analysis"
	"hgbdice/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"percent":  report.Percent,
		"number":   func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) },
		"isBool":   func(t analysis.Type) bool { return t == analysis.Bool },
		"barWidth": func(p float64) string { return strconv.FormatFloat(30*p, 'f', 2, 64) },
	}).ParseFS(templateFS, "templates/*.html"))
}

// IndexViewModel is the data for the scenario form.
type IndexViewModel struct {
	Examples []ExampleOption
	Scenario string
}

// ExampleOption is one example scenario rendered as YAML.
type ExampleOption struct {
	Name string
	YAML string
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	vm := IndexViewModel{}
	for _, name := range s.exampleNames() {
		b, err := yaml.Marshal(s.Examples[name])
		if err != nil {
			s.logger().Warn("render example", zap.String("name", name), zap.Error(err))
			continue
		}
		vm.Examples = append(vm.Examples, ExampleOption{Name: name, YAML: string(b)})
	}
	if len(vm.Examples) > 0 {
		vm.Scenario = vm.Examples[0].YAML
	}
	s.render(w, "index.html", vm)
}

// GET /runs/{id}/view
func (s *Server) handleRunView(w http.ResponseWriter, r *http.Request) {
	run, ok := s.getRun(w, r)
	if !ok {
		return
	}
	s.render(w, "run.html", run)
}

// GET /runs/{id}/report.pdf
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	run, ok := s.getRun(w, r)
	if !ok {
		return
	}
	b, err := report.Generate(run.Name, run.Summary, run.Results)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+run.ID+`.pdf"`)
	_, _ = w.Write(b)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.Tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger().Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
