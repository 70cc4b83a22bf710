// Package web serves scenario analysis over HTTP: a JSON API, stored runs
// with PDF reports, and a small HTML front end.
package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"hgbdice/internal/analysis"
	"hgbdice/internal/game"
	"hgbdice/internal/scenario"
	"hgbdice/internal/store"
	"hgbdice/internal/traits"
)

// Run is one stored analysis.
type Run struct {
	ID       string             `json:"id"`
	Created  time.Time          `json:"created"`
	Scenario *scenario.Document `json:"scenario"`
	*scenario.Outcome
}

type Server struct {
	Store store.Store[Run]
	Tmpl  *template.Template
	Log   *zap.Logger
	// Examples are offered on the index page, keyed by name.
	Examples map[string]*scenario.Document
	// MaxBody caps request bodies; 0 uses defaultMaxBody.
	MaxBody int64
}

const defaultMaxBody = 1 << 20

const contentTypeJSON = "application/json"

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /describe", s.handleDescribe)
	mux.HandleFunc("GET /runs/{id}", s.handleRun)
	mux.HandleFunc("GET /runs/{id}/view", s.handleRunView)
	mux.HandleFunc("GET /runs/{id}/report.pdf", s.handleReport)

	mux.HandleFunc("GET /traits", s.handleTraits)
	mux.HandleFunc("GET /analyses", s.handleAnalyses)
	mux.HandleFunc("GET /examples", s.handleExamples)
	mux.HandleFunc("GET /examples/{name}", s.handleExample)
	return s.logRequests(gzhttp.GzipHandler(mux))
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// POST /analyze evaluates the YAML or JSON scenario in the body and stores
// the run. Form posts from the index page carry it in the "scenario" field
// and are redirected to the run's page.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, form, err := s.readScenario(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := scenario.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := scenario.Analyze(ctx, doc, game.WithLogger(s.logger()))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	run := Run{ID: s.Store.NewID(), Created: time.Now().UTC(), Scenario: doc, Outcome: out}
	if err := s.Store.Put(ctx, run.ID, run); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger().Info("analyzed scenario",
		zap.String("run", run.ID),
		zap.String("name", doc.Name),
		zap.Int("worlds", out.Worlds),
		zap.Int("stored", s.Store.Len()),
	)

	if form {
		http.Redirect(w, r, "/runs/"+run.ID+"/view", http.StatusSeeOther)
		return
	}
	w.Header().Set("Location", "/runs/"+run.ID)
	writeJSON(w, http.StatusCreated, run)
}

// POST /describe reports both dice rolls without evaluating the attack.
func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	body, _, err := s.readScenario(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := scenario.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, err := doc.Build(game.WithLogger(s.logger()))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, sc.Describe(r.Context()))
}

func (s *Server) readScenario(w http.ResponseWriter, r *http.Request) (body []byte, form bool, err error) {
	limit := s.MaxBody
	if limit <= 0 {
		limit = defaultMaxBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, true, err
		}
		return []byte(r.PostFormValue("scenario")), true, nil
	}
	body, err = io.ReadAll(r.Body)
	return body, false, err
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) (Run, bool) {
	run, ok, err := s.Store.Get(r.Context(), r.PathValue("id"))
	switch {
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return Run{}, false
	case !ok:
		writeError(w, http.StatusNotFound, errRunNotFound)
		return Run{}, false
	}
	return run, true
}

var errRunNotFound = errors.New("run not found")

// GET /runs/{id}
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.getRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// GET /traits lists the trait catalogs.
func (s *Server) handleTraits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]traits.Trait{
		"model":  traits.Model().List(),
		"weapon": traits.Weapon().List(),
	})
}

func (s *Server) handleAnalyses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analysis.All())
}

// exampleNames returns the example names in order.
func (s *Server) exampleNames() []string {
	names := make([]string, 0, len(s.Examples))
	for n := range s.Examples {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.exampleNames())
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.Examples[r.PathValue("name")]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("example not found"))
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
