package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
	"github.com/uniewms/carrierboard/internal/schedule"
	"github.com/uniewms/carrierboard/internal/search"
	webembed "github.com/uniewms/carrierboard/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(amount float64) string {
			return fmt.Sprintf("%.2f", amount)
		},
		"date": func(t *time.Time) string {
			if t == nil {
				return "—"
			}
			return t.Format("Jan 2, 2006")
		},
		"orDash": func(s string) string {
			if s == "" {
				return "—"
			}
			return s
		},
		"statusName": func(status string) string {
			if label, ok := search.StatusLabels[status]; ok {
				return label
			}
			switch status {
			case freight.OfferStatusPending:
				return "Pending"
			case freight.OfferStatusApproved:
				return "Approved"
			case freight.OfferStatusRejected:
				return "Rejected"
			}
			return status
		},
		"offerBadge": func(status string) string {
			switch status {
			case freight.OfferStatusApproved:
				return "badge-approved"
			case freight.OfferStatusRejected:
				return "badge-rejected"
			default:
				return "badge-pending"
			}
		},
		"scheduleClass": func(s schedule.Status) string {
			return "row-" + string(s)
		},
		"join": strings.Join,
		"has": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"opportunities.html",
		"job_detail.html",
		"active.html",
		"scheduled.html",
		"financial.html",
		"inbox.html",
		"notifications.html",
		"feedback.html",
		"profile.html",
		"company.html",
		"subusers.html",
		"files.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *freight.User
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB         *sql.DB
	Templates  *Templates
	Secret     string
	Freight    *freight.Client
	SessionTTL time.Duration
}
