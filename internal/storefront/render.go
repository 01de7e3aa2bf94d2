package storefront

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/lumaqa/lumacheck/internal/fixtures"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the content templates rendered inside the layout
var pageNames = []string{
	"home", "category", "listing", "product", "cart",
	"login", "create", "forgot", "account", "compare", "simple",
}

var templateFuncs = template.FuncMap{
	"price": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"emptyCart": func() string {
		return msgEmptyCart
	},
	"join": strings.Join,
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

// pageData is what the layout template renders
type pageData struct {
	Title     string
	BodyClass string
	Session   *Session
	Menu      []fixtures.MenuTab
	SubMenus  map[string][]string
	Footer    []fixtures.Link
	Content   any
}

// renderer executes the layout with one content template per page
type renderer struct {
	pages    map[string]*template.Template
	catalog  *fixtures.Catalog
	subMenus map[string][]string
	logger   *zap.Logger
}

func newRenderer(catalog *fixtures.Catalog, logger *zap.Logger) (*renderer, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		tmpl, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	subMenus := make(map[string][]string, len(catalog.SubMenus))
	for _, s := range catalog.SubMenus {
		subMenus[s.Tab] = s.Submenu
	}

	return &renderer{pages: pages, catalog: catalog, subMenus: subMenus, logger: logger}, nil
}

// page describes one rendered response
type page struct {
	name      string
	title     string
	bodyClass string
	status    int
	content   any
}

// render writes p for the session. Execution happens into a buffer so a
// template error can still produce a clean 500.
func (rd *renderer) render(w http.ResponseWriter, session Session, p page) {
	tmpl, ok := rd.pages[p.name]
	if !ok {
		rd.logger.Error("unknown page template", zap.String("page", p.name))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:     p.title,
		BodyClass: p.bodyClass,
		Session:   &session,
		Menu:      rd.catalog.Menu,
		SubMenus:  rd.subMenus,
		Footer:    rd.catalog.Footer,
		Content:   p.content,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.logger.Error("failed to render page", zap.String("page", p.name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := p.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rd.logger.Debug("failed to write page", zap.String("page", p.name), zap.Error(err))
	}
}
