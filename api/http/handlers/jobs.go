package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/activity"
	"github.com/rozgaar/backend/pkg/jobs"
	"github.com/rozgaar/backend/pkg/security/jwt"
)

type JobsHandler struct {
	jobs     jobs.UseCase
	activity activity.UseCase
}

func NewJobsHandler(uc jobs.UseCase, act activity.UseCase) *JobsHandler {
	return &JobsHandler{jobs: uc, activity: act}
}

// Get returns one stored job with its skills.
// @Summary Job detail
// @Tags    jobs
// @Produce json
// @Param   id path string true "Job ID (UUID)"
// @Success 200 {object} map[string]jobs.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Job ID is required")
	}
	job, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return fail(c, err, "Failed to fetch job")
	}
	if u, ok := jwt.UserFrom(c); ok {
		if err := h.activity.Track(c.Context(), u.ID, activity.ActionJobView, map[string]any{"jobId": id.String()}); err != nil {
			slog.Warn("track job view failed", slog.Any("err", err))
		}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"job": job})
}

// List browses stored jobs, newest first, with optional exact filters.
// @Summary List jobs
// @Tags    jobs
// @Produce json
// @Param   type     query string false "internship, full-time, part-time or contract"
// @Param   location query string false "Location substring"
// @Param   remote   query bool   false "Remote jobs only"
// @Param   limit    query int    false "Maximum results (1-100)" default(50)
// @Success 200 {object} map[string][]jobs.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobsHandler) List(c *fiber.Ctx) error {
	f := jobs.Filter{
		Location: strings.TrimSpace(c.Query("location")),
		Remote:   c.QueryBool("remote"),
		Limit:    c.QueryInt("limit"),
	}
	if raw := c.Query("type"); raw != "" {
		if f.Type = jobs.ParseType(raw); f.Type == nil {
			return presenter.Error(c, http.StatusBadRequest, "unknown job type")
		}
	}
	list, err := h.jobs.List(c.Context(), f)
	if err != nil {
		return fail(c, err, "Failed to list jobs")
	}
	if list == nil {
		list = []jobs.Job{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"jobs": list})
}

type linksRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

// Links returns search URLs for job boards that are not ingested.
// @Summary External job board links
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body linksRequest true "Search"
// @Success 200 {array} jobs.SourceLink
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobsHandler) Links(c *fiber.Ctx) error {
	var req linksRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	links, err := h.jobs.Links(req.Query, req.Location)
	if err != nil {
		return fail(c, err, "Failed to build job links")
	}
	return presenter.JSON(c, http.StatusOK, links)
}

type summarizeRequest struct {
	JobID       string `json:"jobId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
}

// Summarize produces a short structured summary of a posting.
// @Summary Summarize a job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body summarizeRequest true "Job to summarize"
// @Success 200 {object} jobs.Summary
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/summarize [post]
func (h *JobsHandler) Summarize(c *fiber.Ctx) error {
	var req summarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	s, err := h.jobs.Summarize(c.Context(), jobs.SummaryRequest{
		JobID:       req.JobID,
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
	})
	if err != nil {
		return fail(c, err, "Failed to generate summary")
	}
	return presenter.JSON(c, http.StatusOK, s)
}

type feedbackRequest struct {
	Relevant *bool `json:"relevant"`
}

// Feedback records whether a job was relevant to the caller.
// @Summary Job relevance feedback
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id    path string          true "Job ID (UUID)"
// @Param   input body feedbackRequest true "Verdict"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/feedback [post]
func (h *JobsHandler) Feedback(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Job ID is required")
	}
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil || req.Relevant == nil {
		return presenter.Error(c, http.StatusBadRequest, "relevant is required")
	}
	if err := h.activity.SaveFeedback(c.Context(), u.ID, id, *req.Relevant); err != nil {
		return fail(c, err, "Failed to save job feedback")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}
