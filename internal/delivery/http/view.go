package http

import (
	"embed"
	"html/template"

	"github.com/lookalike/web/internal/domain"
	"github.com/lookalike/web/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const refreshWhileLoading = 2

// FacetSelect is one filter dropdown
type FacetSelect struct {
	Name     string
	Label    string
	Options  []string
	Selected string
}

// PageView is everything the search page template needs
type PageView struct {
	Notice         *usecase.Notice
	URLText        string
	Filename       string
	Preview        string
	Facets         []FacetSelect
	Loading        bool
	SearchLabel    string
	RefreshSeconds int
	Results        usecase.ResultsView
}

func newPageView(state usecase.State, notice *usecase.Notice) PageView {
	view := PageView{
		Notice:      notice,
		URLText:     state.URLText,
		Filename:    state.Filename,
		Preview:     state.Preview,
		Loading:     state.Loading,
		SearchLabel: "Search",
		Results:     usecase.RenderResults(state.Results, state.Loading),
	}
	if state.Loading {
		view.SearchLabel = "Searching..."
	}
	if state.Loading || state.FiltersLoading {
		view.RefreshSeconds = refreshWhileLoading
	}

	for _, facet := range domain.Facets {
		view.Facets = append(view.Facets, FacetSelect{
			Name:     string(facet),
			Label:    facet.Label(),
			Options:  state.Options.For(facet),
			Selected: state.Filters.Get(facet),
		})
	}
	return view
}

func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
