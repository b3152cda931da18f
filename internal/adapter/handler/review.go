package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/internal/adapter/dto"
	"github.com/aimalabs/meeting-review/internal/usecase/review"
)

// RecordingLister exposes the recording bucket listing
type RecordingLister interface {
	ListRecordings(ctx context.Context) ([]string, error)
}

// Review handles the meeting review surface: recording listings, analysis,
// progress polling, persisted summaries and the calendar/to-do views.
type Review struct {
	store     *review.MeetingStore
	workflow  *review.Workflow
	projector *review.CalendarProjector
	storage   RecordingLister
	logger    *zap.Logger
}

// NewReview creates the review handler
func NewReview(store *review.MeetingStore, workflow *review.Workflow, projector *review.CalendarProjector, storage RecordingLister, logger *zap.Logger) *Review {
	return &Review{
		store:     store,
		workflow:  workflow,
		projector: projector,
		storage:   storage,
		logger:    logger,
	}
}

// ListFiles returns recordings not yet analyzed in this session
func (h *Review) ListFiles(c echo.Context) error {
	files, err := h.storage.ListRecordings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrFileListFailed(err))
	}

	fresh := h.store.OfferNewFiles(files)
	return HandleSuccess(h.logger, c, dto.FileListResponse{Files: fresh})
}

// ListAnalyzed returns meeting files analyzed during this session
func (h *Review) ListAnalyzed(c echo.Context) error {
	return HandleSuccess(h.logger, c, dto.AnalyzedResponse{Meetings: h.store.AnalyzedMeetings()})
}

// Analyze runs the full analysis pipeline for one recording
func (h *Review) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("filename is required"))
	}

	summary, err := h.workflow.AnalyzeNew(c.Request().Context(), req.Filename)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, summary)
}

// Progress reports the state of the most recent analysis run
func (h *Review) Progress(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.workflow.Progress())
}

// Summary loads a persisted summary into the session
func (h *Review) Summary(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("filename is required"))
	}

	summary, err := h.workflow.LoadExisting(c.Request().Context(), filename)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, summary)
}

// UpdateActionItem edits one action item by its position and saves the
// resulting sequence in the background
func (h *Review) UpdateActionItem(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("index must be an integer"))
	}

	var req dto.UpdateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("due must be a YYYY-MM-DD date"))
	}

	if err := h.projector.EditItem(index, req.Name, req.Due); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, h.projector.Todos())
}

// Calendar returns the calendar event feed for the current session
func (h *Review) Calendar(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.projector.Events())
}

// Todos returns the to-do list, optionally filtered to one day
func (h *Review) Todos(c echo.Context) error {
	if date := c.QueryParam("date"); date != "" {
		return HandleSuccess(h.logger, c, h.projector.TodosOn(date))
	}
	return HandleSuccess(h.logger, c, h.projector.Todos())
}
