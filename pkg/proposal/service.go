package proposal

import (
	"time"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/model"
)

func NewService(repository *repository, eventService eventService) *Service {
	return &Service{
		repository:   repository,
		eventService: eventService,
	}
}

type eventService interface {
	FindBySlug(eventSlug string) (*model.Event, error)
}

type Service struct {
	repository   *repository
	eventService eventService
}

// UpdateProposal carries the mutable fields of a proposal.
type UpdateProposal struct {
	Title       string
	Description string
	IsPublished bool
}

// Create creates a proposal owned by the actor against the event. The due
// date binds every actor, including the event author. Event publication does
// not gate proposal creation.
func (s Service) Create(actor model.Actor, eventSlug, title, description string) (*model.Proposal, error) {
	event, err := s.eventService.FindBySlug(eventSlug)
	if err != nil {
		return nil, err
	}

	author, ok := actor.User()
	if !ok {
		return nil, errdef.NewUnauthorized("sign in to submit a proposal")
	}

	if !handler.CanCreateProposal(actor, event, time.Now()) {
		return nil, errdef.NewSubmissionClosed("proposal submission for event %q closed on %s", event.Slug, event.DueDate.Format(time.RFC3339))
	}

	proposal := &model.Proposal{
		Title:       title,
		Description: description,
		EventID:     event.ID,
		UserID:      author.ID,
	}

	err = s.repository.create(proposal)
	if err != nil {
		return nil, err
	}

	return proposal, nil
}

// Update mutates the proposal only if the actor is its author. On a
// forbidden update the unchanged proposal is returned alongside the error.
func (s Service) Update(actor model.Actor, eventSlug, proposalSlug string, update UpdateProposal) (*model.Proposal, error) {
	proposal, err := s.FindBySlug(eventSlug, proposalSlug)
	if err != nil {
		return nil, err
	}

	if !handler.CanUpdateProposal(actor, proposal) {
		return proposal, errdef.NewForbidden("only the author can update proposal %q", proposal.Slug)
	}

	proposal.Title = update.Title
	proposal.Description = update.Description
	proposal.IsPublished = update.IsPublished

	err = s.repository.save(proposal)
	if err != nil {
		return nil, err
	}

	return proposal, nil
}

// FindBySlug resolves a proposal by event slug and proposal slug, with its
// event and vote count loaded.
func (s Service) FindBySlug(eventSlug, proposalSlug string) (*model.Proposal, error) {
	event, err := s.eventService.FindBySlug(eventSlug)
	if err != nil {
		return nil, err
	}

	proposal, err := s.repository.findBySlug(event.ID, proposalSlug)
	if err != nil {
		return nil, err
	}

	votes, err := s.repository.countVotes(proposal.ID)
	if err != nil {
		return nil, err
	}
	proposal.VotesCount = votes

	return proposal, nil
}

// FindPublishedByEvent lists the published proposals of the event for the
// public rating page. When the event does not allow public voting the
// listing is empty, moderation listing stays available through
// FindAllByEvent.
func (s Service) FindPublishedByEvent(eventSlug string) ([]model.Proposal, error) {
	event, err := s.eventService.FindBySlug(eventSlug)
	if err != nil {
		return nil, err
	}

	if !event.AllowPublicVoting {
		return []model.Proposal{}, nil
	}

	return s.repository.findPublishedByEvent(event.ID)
}

// FindAllByEvent lists every proposal of the event for moderation. Only the
// event author may use it.
func (s Service) FindAllByEvent(actor model.Actor, eventSlug string) ([]model.Proposal, error) {
	event, err := s.eventService.FindBySlug(eventSlug)
	if err != nil {
		return nil, err
	}

	if !actor.Is(event.UserID) {
		return nil, errdef.NewForbidden("only the author can moderate event %q", event.Slug)
	}

	return s.repository.findAllByEvent(event.ID)
}
