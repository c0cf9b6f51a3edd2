package event

import (
	"time"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/model"
)

func NewService(repository *repository) *Service {
	return &Service{repository}
}

type Service struct {
	repository *repository
}

// UpdateEvent carries the mutable fields of an event.
type UpdateEvent struct {
	Title             string
	Description       string
	DueDate           time.Time
	IsPublished       bool
	AllowPublicVoting bool
}

// Create creates an event owned by the actor. Anonymous actors are rejected.
func (s Service) Create(actor model.Actor, title, description string, dueDate time.Time, isPublished, allowPublicVoting bool) (*model.Event, error) {
	author, ok := actor.User()
	if !ok {
		return nil, errdef.NewUnauthorized("sign in to create an event")
	}

	event := &model.Event{
		Title:             title,
		Description:       description,
		UserID:            author.ID,
		DueDate:           dueDate,
		IsPublished:       isPublished,
		AllowPublicVoting: allowPublicVoting,
	}

	err := s.repository.create(event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// Update mutates the event only if the actor is its author. On a forbidden
// update the unchanged event is returned alongside the error so callers can
// re-render the current state.
func (s Service) Update(actor model.Actor, eventSlug string, update UpdateEvent) (*model.Event, error) {
	event, err := s.repository.findBySlug(eventSlug)
	if err != nil {
		return nil, err
	}

	if !handler.CanUpdateEvent(actor, event) {
		return event, errdef.NewForbidden("only the author can update event %q", event.Slug)
	}

	event.Title = update.Title
	event.Description = update.Description
	event.DueDate = update.DueDate
	event.IsPublished = update.IsPublished
	event.AllowPublicVoting = update.AllowPublicVoting

	err = s.repository.save(event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s Service) FindBySlug(eventSlug string) (*model.Event, error) {
	return s.repository.findBySlug(eventSlug)
}

func (s Service) FindAllPublished() ([]model.Event, error) {
	return s.repository.findAllPublished()
}

// FindByAuthor lists the events authored by the actor.
func (s Service) FindByAuthor(actor model.Actor) ([]model.Event, error) {
	author, ok := actor.User()
	if !ok {
		return nil, errdef.NewUnauthorized("sign in to list your events")
	}
	return s.repository.findByAuthor(author.ID)
}
