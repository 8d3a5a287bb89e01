// Package web serves the storefront as server-rendered HTML.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/faq"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const requirementWarning = "Please describe your requirement"

// Options wires the storefront to the catalog and the ordering flow.
type Options struct {
	Store         *catalog.Store
	DefaultFilter types.Filter
	Render        render.Options
	Composer      order.Composer
	FAQ           []faq.Entry
	Logger        *zap.Logger
}

// Server renders storefront pages.
type Server struct {
	opts     Options
	tmpl     *template.Template
	describe describer
	logger   *zap.Logger
}

type cardView struct {
	ID          string
	Name        string
	Price       string
	ImageURL    string
	Category    string
	Description template.HTML
	OrderHref   string
}

type categoryView struct {
	Label  string
	Href   string
	Active bool
}

type faqView struct {
	Question string
	Answer   template.HTML
}

type pageData struct {
	Query         string
	Categories    []categoryView
	Cards         []cardView
	Placeholder   string
	Failed        bool
	Summary       string
	Warning       string
	Requirement   string
	StartingPrice string
}

var labelCaser = cases.Title(language.Und)

func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("web: catalog store is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Render.Currency == "" {
		opts.Render.Currency = render.DefaultCurrency
	}

	tmpl, err := template.New("_root").Funcs(template.FuncMap{
		"now": time.Now,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		opts:     opts,
		tmpl:     tmpl,
		describe: newDescriber(),
		logger:   opts.Logger,
	}, nil
}

// Routes returns the storefront router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(chiMid.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chiMid.Recoverer)
	r.Use(chiMid.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Get("/suggest", s.handleSuggest)
	r.Get("/faq", s.handleFAQ)
	r.Get("/order/{index}", s.handleOrder)
	r.Post("/custom-order", s.handleCustomOrder)
	return r
}

// load performs or reuses the one-time catalog load, detached from the request's
// cancellation. A failed load stays failed.
func (s *Server) load(ctx context.Context) (catalog.Catalog, error) {
	c, err := s.opts.Store.Load(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Warn("catalog unavailable", zap.Error(err))
	}
	return c, err
}

// filterFor reads the view from the query. The bare page is the session's first
// view; category and search links are later interactions.
func (s *Server) filterFor(q url.Values) (types.Filter, bool) {
	if c := q.Get("category"); strings.TrimSpace(c) != "" {
		return types.Category(c), false
	}
	if text := strings.TrimSpace(q.Get("q")); text != "" {
		return types.Substring(text), false
	}
	return s.opts.DefaultFilter, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	f, initial := s.filterFor(r.URL.Query())
	data := s.buildPage(r.Context(), f, initial)
	data.Query = strings.TrimSpace(r.URL.Query().Get("q"))
	s.execute(w, "page", data, http.StatusOK)
}

func (s *Server) buildPage(ctx context.Context, f types.Filter, initial bool) pageData {
	c, err := s.load(ctx)

	surface := &pageSurface{}
	if initial {
		render.Show(surface, c, err, f, s.opts.Render)
	} else {
		render.Apply(surface, c, f, s.opts.Render)
	}
	positions := c.Matches(f)

	data := pageData{
		Placeholder:   surface.placeholder.Text(),
		Failed:        surface.placeholder == render.PlaceholderLoadFailed,
		StartingPrice: s.opts.Composer.Currency + s.opts.Composer.StartingPrice,
	}

	active, selected := "", false
	switch f.Mode {
	case types.ExactCategory:
		active, selected = strings.ToLower(strings.TrimSpace(f.Text)), true
	case types.ListedCategory:
		active, selected = strings.ToLower(f.Text), true
	}
	for _, name := range c.Categories() {
		data.Categories = append(data.Categories, categoryView{
			Label:  labelCaser.String(strings.TrimSpace(name)),
			Href:   "/?category=" + url.QueryEscape(name),
			Active: selected && name == active,
		})
	}

	for _, card := range surface.cards {
		view := cardView{
			ID:          card.ID,
			Name:        card.Name,
			Price:       card.Price,
			ImageURL:    card.ImageURL,
			Category:    labelCaser.String(card.Group),
			Description: s.describe.HTML(card.Description),
		}
		if card.Index < len(positions) {
			view.OrderHref = "/order/" + strconv.Itoa(positions[card.Index])
		}
		data.Cards = append(data.Cards, view)
	}
	if len(data.Cards) > 0 {
		data.Summary = summarize(len(data.Cards), f)
	}
	return data
}

func summarize(n int, f types.Filter) string {
	count := fmt.Sprintf("%d products", n)
	if n == 1 {
		count = "1 product"
	}
	switch f.Mode {
	case types.ExactCategory, types.ListedCategory:
		return count + " in " + labelCaser.String(strings.TrimSpace(f.Text))
	case types.CategorySubstring:
		return count + " matching “" + f.Text + "”"
	default:
		return count
	}
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var items []categoryView
	if c, err := s.load(r.Context()); err == nil {
		for _, name := range c.Suggest(r.URL.Query().Get("q")) {
			items = append(items, categoryView{
				Label: name,
				Href:  "/?q=" + url.QueryEscape(name),
			})
		}
	}
	s.execute(w, "suggest", items, http.StatusOK)
}

func (s *Server) handleFAQ(w http.ResponseWriter, _ *http.Request) {
	entries := make([]faqView, 0, len(s.opts.FAQ))
	for _, e := range s.opts.FAQ {
		entries = append(entries, faqView{Question: e.Question, Answer: s.describe.HTML(e.Answer)})
	}
	s.execute(w, "faq", entries, http.StatusOK)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c, err := s.load(r.Context())
	if err != nil {
		http.Error(w, render.PlaceholderLoadFailed.Text(), http.StatusServiceUnavailable)
		return
	}
	p, ok := c.At(index)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.logger.Info("order link opened", zap.Int("index", index), zap.String("product", p.ID()))
	http.Redirect(w, r, s.opts.Composer.ProductLink(p), http.StatusSeeOther)
}

func (s *Server) handleCustomOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	requirement := r.PostFormValue("requirement")
	link, err := s.opts.Composer.CustomLink(requirement)
	if err != nil {
		data := s.buildPage(r.Context(), s.opts.DefaultFilter, true)
		data.Warning = requirementWarning
		data.Requirement = requirement
		s.execute(w, "page", data, http.StatusUnprocessableEntity)
		return
	}

	s.logger.Info("custom order link opened")
	http.Redirect(w, r, link, http.StatusSeeOther)
}

// execute renders name into a buffer and writes it with status only on success.
func (s *Server) execute(w http.ResponseWriter, name string, data any, status int) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template exec failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
