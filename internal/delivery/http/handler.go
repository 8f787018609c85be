package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lookalike/web/internal/domain"
	"github.com/lookalike/web/internal/usecase"
	"github.com/sirupsen/logrus"
)

// MsgTooLarge is shown when an upload exceeds the configured limit
const MsgTooLarge = "Image is too large"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	maxUpload int64
	logger    logrus.FieldLogger
}

// NewHandler creates a new HTTP handler
func NewHandler(maxUpload int64, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		maxUpload: maxUpload,
		logger:    logger.WithField("component", "http"),
	}
}

// StateResponse is the JSON form of a session's state
type StateResponse struct {
	Loading        bool                 `json:"loading"`
	FiltersLoading bool                 `json:"filtersLoading"`
	HasInput       bool                 `json:"hasInput"`
	URLText        string               `json:"imageUrl,omitempty"`
	Filename       string               `json:"filename,omitempty"`
	Preview        string               `json:"preview,omitempty"`
	Filters        map[string]string    `json:"filters"`
	Options        domain.FilterOptions `json:"options"`
	Notice         *usecase.Notice      `json:"notice,omitempty"`
	Results        usecase.ResultsView  `json:"results"`
}

func newStateResponse(state usecase.State, notice *usecase.Notice) StateResponse {
	filters := make(map[string]string, len(state.Filters))
	for _, fv := range state.Filters.Active() {
		filters[string(fv.Facet)] = fv.Value
	}
	return StateResponse{
		Loading:        state.Loading,
		FiltersLoading: state.FiltersLoading,
		HasInput:       state.HasInput,
		URLText:        state.URLText,
		Filename:       state.Filename,
		Preview:        state.Preview,
		Filters:        filters,
		Options:        state.Options,
		Notice:         notice,
		Results:        usecase.RenderResults(state.Results, state.Loading),
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lookalike-web",
		"version": "1.0.0",
	})
}

// Index renders the search page, consuming the pending notice
func (h *Handler) Index(c *gin.Context) {
	ctrl := controllerFrom(c)
	notice := ctrl.TakeNotice()
	c.HTML(http.StatusOK, "index.html", newPageView(ctrl.Snapshot(), notice))
}

// State returns the session state as JSON without consuming the notice
func (h *Handler) State(c *gin.Context) {
	ctrl := controllerFrom(c)
	c.JSON(http.StatusOK, newStateResponse(ctrl.Snapshot(), ctrl.PendingNotice()))
}

// UploadFile sets an uploaded image as the search input
func (h *Handler) UploadFile(c *gin.Context) {
	ctrl := controllerFrom(c)

	file, err := c.FormFile("image")
	if err != nil {
		ctrl.Notify(usecase.Notice{Kind: usecase.NoticeError, Text: usecase.MsgNotAnImage})
		h.respond(c, ctrl, http.StatusBadRequest)
		return
	}
	if file.Size > h.maxUpload {
		ctrl.Notify(usecase.Notice{Kind: usecase.NoticeError, Text: MsgTooLarge})
		h.respond(c, ctrl, http.StatusRequestEntityTooLarge)
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.WithError(err).Error("failed to open upload")
		ctrl.Notify(usecase.Notice{Kind: usecase.NoticeError, Text: usecase.MsgNotAnImage})
		h.respond(c, ctrl, http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		h.logger.WithError(err).Error("failed to read upload")
		ctrl.Notify(usecase.Notice{Kind: usecase.NoticeError, Text: usecase.MsgNotAnImage})
		h.respond(c, ctrl, http.StatusBadRequest)
		return
	}
	if int64(len(data)) > h.maxUpload {
		ctrl.Notify(usecase.Notice{Kind: usecase.NoticeError, Text: MsgTooLarge})
		h.respond(c, ctrl, http.StatusRequestEntityTooLarge)
		return
	}

	if err := ctrl.SetFile(file.Filename, data); err != nil {
		h.respond(c, ctrl, http.StatusUnsupportedMediaType)
		return
	}
	h.respond(c, ctrl, http.StatusOK)
}

// SetURL sets a pasted image URL as the search input
func (h *Handler) SetURL(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.SetURLText(c.PostForm("imageUrl"))
	h.respond(c, ctrl, http.StatusOK)
}

// SetFilters applies every facet present in the form
func (h *Handler) SetFilters(c *gin.Context) {
	ctrl := controllerFrom(c)
	applyFacets(c, ctrl)
	h.respond(c, ctrl, http.StatusOK)
}

// Search applies the submitted facets and starts a search in the background
func (h *Handler) Search(c *gin.Context) {
	ctrl := controllerFrom(c)
	applyFacets(c, ctrl)

	// the search outlives the request; the client's own timeout bounds it
	_, err := ctrl.StartSearch(context.WithoutCancel(c.Request.Context()))
	switch {
	case errors.Is(err, domain.ErrNoSearchInput):
		h.respond(c, ctrl, http.StatusBadRequest)
	case errors.Is(err, domain.ErrSearchInProgress):
		h.respond(c, ctrl, http.StatusConflict)
	case err != nil:
		h.logger.WithError(err).Error("failed to start search")
		h.respond(c, ctrl, http.StatusInternalServerError)
	default:
		h.respond(c, ctrl, http.StatusAccepted)
	}
}

// Preview serves the uploaded image of the session
func (h *Handler) Preview(c *gin.Context) {
	in, ok := controllerFrom(c).PreviewImage()
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, in.ContentType, in.Data)
}

func applyFacets(c *gin.Context, ctrl *usecase.SearchController) {
	for _, facet := range domain.Facets {
		if value, ok := c.GetPostForm(string(facet)); ok {
			// facets come from domain.Facets so they always parse
			_ = ctrl.SetFilter(string(facet), value)
		}
	}
}

// respond redirects browsers back to the page; JSON clients get the state
// with the given status instead.
func (h *Handler) respond(c *gin.Context, ctrl *usecase.SearchController, status int) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(status, newStateResponse(ctrl.Snapshot(), ctrl.PendingNotice()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
