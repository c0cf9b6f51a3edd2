package vote

import (
	"net/http"

	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(voteService voteService) Handler {
	return Handler{voteService}
}

type Handler struct {
	voteService voteService
}

type voteService interface {
	CastVote(actor model.Actor, eventSlug, proposalSlug, rateToken string) (Result, error)
}

type CastVoteRequest struct {
	Rate string `json:"rate" binding:"required,oneOf=sad happy laughing"`
}

// CastVote records a rating decision for a proposal.
func (h Handler) CastVote(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}
	proposalSlug, ok := handler.GetSlugParameter(c, "proposalSlug")
	if !ok {
		return
	}

	var request CastVoteRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	actor := handler.GetActorFromContext(c)
	if !actor.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/tokens")
		return
	}

	result, err := h.voteService.CastVote(actor, eventSlug, proposalSlug, request.Rate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
