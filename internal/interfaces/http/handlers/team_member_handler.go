package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"team-management.backend/internal/domain/entities"
	domainerrors "team-management.backend/internal/domain/errors"
	"team-management.backend/internal/interfaces/http/response"
	"team-management.backend/internal/usecases"
)

// TeamMemberHandler handles team member endpoints
type TeamMemberHandler struct {
	usecase *usecases.TeamMemberUsecase
}

// NewTeamMemberHandler creates a new team member handler
func NewTeamMemberHandler(usecase *usecases.TeamMemberUsecase) *TeamMemberHandler {
	return &TeamMemberHandler{usecase: usecase}
}

type listTeamMembersQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
	Role   string `form:"role"`
}

// ListTeamMembers returns every matching team member as a JSON array. When
// page or limit is given the response is a page: {items, meta}.
// GET /api/teammembers
func (h *TeamMemberHandler) ListTeamMembers(c *gin.Context) {
	var q listTeamMembersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid query parameters"))
		return
	}

	result, err := h.usecase.List(c.Request.Context(), usecases.ListTeamMembersParams{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
		Role:   entities.Role(q.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		response.Success(c, http.StatusOK, result.Items)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetTeamMember returns a single team member.
// GET /api/teammembers/:id
func (h *TeamMemberHandler) GetTeamMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}
	member, err := h.usecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// CreateTeamMember creates a team member.
// POST /api/teammembers
func (h *TeamMemberHandler) CreateTeamMember(c *gin.Context) {
	var input entities.TeamMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	member, err := h.usecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, member)
}

// UpdateTeamMember replaces a team member.
// PUT /api/teammembers/:id
func (h *TeamMemberHandler) UpdateTeamMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}

	var input entities.TeamMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	member, err := h.usecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// PatchTeamMember updates the supplied fields of a team member.
// PATCH /api/teammembers/:id
func (h *TeamMemberHandler) PatchTeamMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}

	var patch entities.TeamMemberPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	member, err := h.usecase.Patch(c.Request.Context(), id, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// DeleteTeamMember permanently deletes a team member.
// DELETE /api/teammembers/:id
func (h *TeamMemberHandler) DeleteTeamMember(c *gin.Context) {
	id, ok := parseMemberID(c)
	if !ok {
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c, http.StatusNoContent)
}

// GetSchema describes the writable fields and their constraints.
// GET /api/teammembers/schema
func (h *TeamMemberHandler) GetSchema(c *gin.Context) {
	response.Success(c, http.StatusOK, entities.TeamMemberSchema)
}

func parseMemberID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid team member ID"))
		return uuid.Nil, false
	}
	return id, true
}
