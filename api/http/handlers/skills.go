package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rozgaar/backend/api/http/presenter"
	"github.com/rozgaar/backend/pkg/security/jwt"
	"github.com/rozgaar/backend/pkg/skills"
)

type SkillsHandler struct{ svc skills.UseCase }

func NewSkillsHandler(svc skills.UseCase) *SkillsHandler { return &SkillsHandler{svc: svc} }

// List returns the caller's skills.
// @Summary List my skills
// @Tags    skills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]skills.UserSkill
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /user/skills [get]
func (h *SkillsHandler) List(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	list, err := h.svc.List(c.Context(), u.ID)
	if err != nil {
		return fail(c, err, "Failed to fetch skills")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"skills": list})
}

type addSkillRequest struct {
	SkillName   string `json:"skillName"`
	Proficiency int    `json:"proficiency"`
}

// Add puts a skill on the caller's profile or updates its proficiency.
// @Summary Add or update a skill
// @Tags    skills
// @Accept  json
// @Produce json
// @Param   input body addSkillRequest true "Skill and proficiency (1-5, default 3)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /user/skills [post]
func (h *SkillsHandler) Add(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var req addSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	added, err := h.svc.Add(c.Context(), u, req.SkillName, req.Proficiency)
	if err != nil {
		return fail(c, err, "Failed to add skill")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "skillName": added.Name, "skill": added})
}

// Remove drops a skill from the caller's profile.
// @Summary Remove a skill
// @Tags    skills
// @Produce json
// @Param   skillId query string true "Skill ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /user/skills [delete]
func (h *SkillsHandler) Remove(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Query("skillId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Skill ID is required")
	}
	if err := h.svc.Remove(c.Context(), u.ID, id); err != nil {
		return fail(c, err, "Failed to remove skill")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true})
}

// Extract reads skills from an uploaded resume and adds them to the profile.
// @Summary Extract skills from a resume
// @Tags    skills
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Resume (PDF or DOCX, max 2MB)"
// @Security BearerAuth
// @Success 200 {object} map[string][]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 413 {object} presenter.ErrorResponse
// @Router  /skills/extract [post]
func (h *SkillsHandler) Extract(c *fiber.Ctx) error {
	u, ok := jwt.UserFrom(c)
	if !ok {
		return unauthorized(c)
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "Resume file is required")
	}
	if fh.Size > skills.MaxResumeBytes {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, "File too large (max 2MB)")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, skills.MaxResumeBytes)
	if err != nil {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	}
	found, err := h.svc.ExtractFromResume(c.Context(), u, fh.Filename, data)
	if err != nil {
		return fail(c, err, "Failed to extract skills")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"skills": found})
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file too large (max %dMB)", max>>20)
	}
	return data, nil
}
