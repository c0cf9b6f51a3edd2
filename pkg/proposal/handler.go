package proposal

import (
	"net/http"

	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(proposalService proposalService) Handler {
	return Handler{proposalService}
}

type Handler struct {
	proposalService proposalService
}

type proposalService interface {
	Create(actor model.Actor, eventSlug, title, description string) (*model.Proposal, error)
	Update(actor model.Actor, eventSlug, proposalSlug string, update UpdateProposal) (*model.Proposal, error)
	FindBySlug(eventSlug, proposalSlug string) (*model.Proposal, error)
	FindPublishedByEvent(eventSlug string) ([]model.Proposal, error)
	FindAllByEvent(actor model.Actor, eventSlug string) ([]model.Proposal, error)
}

type CreateProposalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Create proposal
func (h Handler) Create(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}

	var request CreateProposalRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	actor := handler.GetActorFromContext(c)
	if !actor.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/tokens")
		return
	}

	proposal, err := h.proposalService.Create(actor, eventSlug, request.Title, request.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

type UpdateProposalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsPublished bool   `json:"isPublished"`
}

// Update proposal
func (h Handler) Update(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}
	proposalSlug, ok := handler.GetSlugParameter(c, "proposalSlug")
	if !ok {
		return
	}

	var request UpdateProposalRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	actor := handler.GetActorFromContext(c)
	if !actor.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/tokens")
		return
	}

	proposal, err := h.proposalService.Update(actor, eventSlug, proposalSlug, UpdateProposal{
		Title:       request.Title,
		Description: request.Description,
		IsPublished: request.IsPublished,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// FindBySlug proposal
func (h Handler) FindBySlug(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}
	proposalSlug, ok := handler.GetSlugParameter(c, "proposalSlug")
	if !ok {
		return
	}

	proposal, err := h.proposalService.FindBySlug(eventSlug, proposalSlug)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// List published proposals of an event
func (h Handler) List(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}

	proposals, err := h.proposalService.FindPublishedByEvent(eventSlug)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// ListModeration lists every proposal of an event for its author.
func (h Handler) ListModeration(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}

	actor := handler.GetActorFromContext(c)

	proposals, err := h.proposalService.FindAllByEvent(actor, eventSlug)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}
