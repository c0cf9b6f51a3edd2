package handler

import (
	"time"

	"github.com/confdeck/deck-manager/pkg/model"
)

// Pure authorization decisions. The services gate mutations on these and
// derive the specific error when a gate fails; handlers consult the ones
// that need no lookup.

func CanCreateEvent(actor model.Actor) bool {
	return actor.IsAuthenticated()
}

func CanUpdateEvent(actor model.Actor, event *model.Event) bool {
	return actor.Is(event.UserID)
}

func CanCreateProposal(actor model.Actor, event *model.Event, now time.Time) bool {
	return actor.IsAuthenticated() && event.SubmissionOpen(now)
}

func CanUpdateProposal(actor model.Actor, proposal *model.Proposal) bool {
	return actor.Is(proposal.UserID)
}

// CanVote requires proposal.Event to be loaded.
func CanVote(actor model.Actor, proposal *model.Proposal) bool {
	return actor.IsAuthenticated() &&
		!actor.Is(proposal.UserID) &&
		proposal.Event != nil &&
		proposal.Event.AllowPublicVoting
}
