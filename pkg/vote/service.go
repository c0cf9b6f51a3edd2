package vote

import (
	"fmt"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/live"
	"github.com/confdeck/deck-manager/pkg/model"
)

func NewService(repository *repository, proposalService proposalService, broker broker) *Service {
	return &Service{
		repository:      repository,
		proposalService: proposalService,
		broker:          broker,
	}
}

type proposalService interface {
	FindBySlug(eventSlug, proposalSlug string) (*model.Proposal, error)
}

type broker interface {
	Send(id uint, event live.Event) bool
}

type Service struct {
	repository      *repository
	proposalService proposalService
	broker          broker
}

// CastVote records the actor's rating decision for a proposal. The checks
// run in a fixed order and any failure leaves the ledger untouched: unknown
// rate token, anonymous actor, voting disabled on the owning event, self
// vote. A repeated vote by the same voter replaces the stored value, so
// exactly one vote row ever exists per (proposal, voter) pair.
func (s Service) CastVote(actor model.Actor, eventSlug, proposalSlug, rateToken string) (Result, error) {
	rate, err := model.ParseRateToken(rateToken)
	if err != nil {
		return Result{}, err
	}

	voter, ok := actor.User()
	if !ok {
		return Result{}, errdef.NewUnauthorized("sign in to vote")
	}

	proposal, err := s.proposalService.FindBySlug(eventSlug, proposalSlug)
	if err != nil {
		return Result{}, err
	}

	if !handler.CanVote(actor, proposal) {
		if proposal.Event == nil || !proposal.Event.AllowPublicVoting {
			return Result{}, errdef.NewVotingDisabled("event %q does not allow public voting", eventSlug)
		}
		return Result{}, errdef.NewForbidden("authors can not vote on their own proposal")
	}

	result, err := s.repository.upsert(proposal.ID, voter.ID, rate)
	if err != nil {
		return Result{}, err
	}

	s.broker.Send(proposal.UserID, live.Event{
		Type:    "proposal-rated",
		Message: fmt.Sprintf("proposal %q was rated, the rate is now %d", proposal.Slug, result.Rate),
	})

	return result, nil
}

// Count returns the number of votes currently on the proposal.
func (s Service) Count(proposalID uint) (int64, error) {
	return s.repository.count(proposalID)
}
