package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/lookalike/web/internal/domain"
	"github.com/lookalike/web/internal/infrastructure/metrics"
	"github.com/sirupsen/logrus"
)

// User-facing messages
const (
	MsgNoInput      = "Please upload an image or enter a valid URL"
	MsgNotAnImage   = "Please choose an image file"
	MsgSearchFailed = "Error: Search failed. Please try again."
	errorPrefix     = "Error: "
)

// NoticeKind tells the page how to style a notice
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a message shown to the user once
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// SearchControllerConfig holds configuration for the search controller
type SearchControllerConfig struct {
	// PreviewPath is the URL the page uses to show an uploaded file.
	PreviewPath string
}

// SearchController owns the state of one search form: the image input,
// the selected filters, loading state, the last results and the pending
// notice. All methods are safe for concurrent use.
type SearchController struct {
	client      domain.MatchClient
	filterSrc   domain.FilterSource
	logger      logrus.FieldLogger
	previewPath string

	mu             sync.Mutex
	input          domain.SearchInput
	filters        domain.FilterSet
	options        domain.FilterOptions
	filtersLoading bool
	preview        string
	loading        bool
	results        []domain.Product
	notice         *Notice
}

// State is a consistent copy of the controller's state for rendering
type State struct {
	URLText        string
	Filename       string
	HasInput       bool
	Preview        string
	Filters        domain.FilterSet
	Options        domain.FilterOptions
	FiltersLoading bool
	Loading        bool
	Results        []domain.Product
}

// NewSearchController creates a controller with empty input and options
func NewSearchController(
	client domain.MatchClient,
	filterSrc domain.FilterSource,
	logger logrus.FieldLogger,
	config SearchControllerConfig,
) *SearchController {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	previewPath := config.PreviewPath
	if previewPath == "" {
		previewPath = "/preview"
	}

	return &SearchController{
		client:      client,
		filterSrc:   filterSrc,
		logger:      logger.WithField("component", "search"),
		previewPath: previewPath,
		filters:     domain.FilterSet{},
		options:     domain.EmptyFilterOptions(),
		results:     []domain.Product{},
	}
}

// SetFile replaces the input with an uploaded image and clears any URL.
// Files that are not images are rejected and leave the input unchanged.
func (c *SearchController) SetFile(filename string, data []byte) error {
	contentType := mimetype.Detect(data).String()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(data) == 0 || !strings.HasPrefix(contentType, "image/") {
		c.notice = &Notice{Kind: NoticeError, Text: MsgNotAnImage}
		return domain.ErrNotAnImage
	}

	c.input = domain.FileInput{Filename: filename, ContentType: contentType, Data: data}
	c.preview = c.previewPath + "?v=" + uuid.NewString()
	return nil
}

// SetURLText replaces the input with a pasted image URL and clears any file.
// Blank text leaves no input at all. The URL is not checked.
func (c *SearchController) SetURLText(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.preview = value
	if strings.TrimSpace(value) == "" {
		c.input = nil
		return
	}
	c.input = domain.URLInput{Value: value}
}

// SetFilter selects a value for a facet; an empty value unsets it.
func (c *SearchController) SetFilter(facetName, value string) error {
	facet, err := domain.ParseFacet(facetName)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.filters.Set(facet, value)
	return nil
}

// LoadFilterOptions populates the selectable filter values. On failure the
// options stay empty; the error is logged and returned but nothing is shown.
func (c *SearchController) LoadFilterOptions(ctx context.Context) error {
	options, err := c.filterSrc.FilterOptions(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.filtersLoading = false

	if err != nil {
		c.logger.WithError(err).Error("Failed to load filters")
		return err
	}
	if options == nil {
		c.options = domain.EmptyFilterOptions()
		return nil
	}
	c.options = options.Normalize()
	return nil
}

// StartLoadFilterOptions marks the options as loading and fetches them in
// the background, detached from ctx's cancellation and bounded by timeout
// when it is positive. The returned channel yields the outcome once.
func (c *SearchController) StartLoadFilterOptions(ctx context.Context, timeout time.Duration) <-chan error {
	c.mu.Lock()
	c.filtersLoading = true
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		loadCtx := context.WithoutCancel(ctx)
		if timeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, timeout)
			defer cancel()
		}
		done <- c.LoadFilterOptions(loadCtx)
		close(done)
	}()
	return done
}

// SubmitSearch sends the current input and filters to the matching
// service and blocks until the response settles.
func (c *SearchController) SubmitSearch(ctx context.Context) error {
	req, err := c.beginSearch()
	if err != nil {
		return err
	}
	return c.finishSearch(ctx, req)
}

// StartSearch validates and marks the search as loading, then runs the
// request in the background. The returned channel yields the outcome once.
func (c *SearchController) StartSearch(ctx context.Context) (<-chan error, error) {
	req, err := c.beginSearch()
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- c.finishSearch(ctx, req)
		close(done)
	}()
	return done, nil
}

func (c *SearchController) beginSearch() (*domain.MatchRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if domain.IsEmptyInput(c.input) {
		c.notice = &Notice{Kind: NoticeError, Text: MsgNoInput}
		metrics.ObserveMatch(inputLabel(nil), metrics.OutcomeValidation, 0, 0)
		return nil, domain.ErrNoSearchInput
	}
	if c.loading {
		return nil, domain.ErrSearchInProgress
	}

	c.loading = true
	c.notice = nil
	return &domain.MatchRequest{Input: c.input, Filters: c.filters.Clone()}, nil
}

func (c *SearchController) finishSearch(ctx context.Context, req *domain.MatchRequest) error {
	start := time.Now()
	resp, err := c.client.Match(ctx, req)
	elapsed := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	input := inputLabel(req.Input)
	if err != nil {
		var backendErr *domain.BackendError
		if errors.As(err, &backendErr) {
			c.notice = &Notice{Kind: NoticeError, Text: errorPrefix + backendErr.Error()}
			metrics.ObserveMatch(input, metrics.OutcomeBackend, elapsed, 0)
		} else {
			c.notice = &Notice{Kind: NoticeError, Text: MsgSearchFailed}
			metrics.ObserveMatch(input, metrics.OutcomeTransport, elapsed, 0)
		}
		c.logger.WithError(err).WithField("input", input).Warn("search failed")
		return err
	}

	c.results = resp.Results
	if c.results == nil {
		c.results = []domain.Product{}
	}
	if resp.Message != "" {
		c.notice = &Notice{Kind: NoticeInfo, Text: resp.Message}
	}
	metrics.ObserveMatch(input, metrics.OutcomeSuccess, elapsed, len(c.results))
	return nil
}

// Snapshot returns a copy of the current state
func (c *SearchController) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make([]domain.Product, len(c.results))
	copy(results, c.results)

	state := State{
		Preview:        c.preview,
		Filters:        c.filters.Clone(),
		Options:        c.options,
		FiltersLoading: c.filtersLoading,
		Loading:        c.loading,
		Results:        results,
	}
	switch in := c.input.(type) {
	case domain.URLInput:
		state.URLText = in.Value
	case domain.FileInput:
		state.Filename = in.Filename
	}
	state.HasInput = !domain.IsEmptyInput(c.input)
	return state
}

// Notify replaces the pending notice
func (c *SearchController) Notify(n Notice) {
	c.mu.Lock()
	c.notice = &n
	c.mu.Unlock()
}

// PendingNotice returns the pending notice without clearing it
func (c *SearchController) PendingNotice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// TakeNotice returns the pending notice and clears it
func (c *SearchController) TakeNotice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.notice
	c.notice = nil
	return n
}

// PreviewImage returns the uploaded file, if the input is a file
func (c *SearchController) PreviewImage() (domain.FileInput, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	in, ok := c.input.(domain.FileInput)
	return in, ok
}

func inputLabel(input domain.SearchInput) string {
	switch input.(type) {
	case domain.FileInput:
		return "file"
	case domain.URLInput:
		return "url"
	}
	return "none"
}
