package event

import (
	"net/http"
	"time"

	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	Create(actor model.Actor, title, description string, dueDate time.Time, isPublished, allowPublicVoting bool) (*model.Event, error)
	Update(actor model.Actor, eventSlug string, update UpdateEvent) (*model.Event, error)
	FindBySlug(eventSlug string) (*model.Event, error)
	FindAllPublished() ([]model.Event, error)
	FindByAuthor(actor model.Actor) ([]model.Event, error)
}

type CreateEventRequest struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	DueDate           time.Time `json:"dueDate" binding:"required"`
	IsPublished       bool      `json:"isPublished"`
	AllowPublicVoting *bool     `json:"allowPublicVoting"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	var request CreateEventRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	actor := handler.GetActorFromContext(c)
	if !handler.CanCreateEvent(actor) {
		c.Redirect(http.StatusFound, "/tokens")
		return
	}

	// public voting is on unless explicitly disabled
	allowPublicVoting := true
	if request.AllowPublicVoting != nil {
		allowPublicVoting = *request.AllowPublicVoting
	}

	event, err := h.eventService.Create(actor, request.Title, request.Description, request.DueDate, request.IsPublished, allowPublicVoting)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

type UpdateEventRequest struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	DueDate           time.Time `json:"dueDate" binding:"required"`
	IsPublished       bool      `json:"isPublished"`
	AllowPublicVoting *bool     `json:"allowPublicVoting"`
}

// Update event
func (h Handler) Update(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}

	var request UpdateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	actor := handler.GetActorFromContext(c)
	if !actor.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/tokens")
		return
	}

	allowPublicVoting := true
	if request.AllowPublicVoting != nil {
		allowPublicVoting = *request.AllowPublicVoting
	}

	event, err := h.eventService.Update(actor, eventSlug, UpdateEvent{
		Title:             request.Title,
		Description:       request.Description,
		DueDate:           request.DueDate,
		IsPublished:       request.IsPublished,
		AllowPublicVoting: allowPublicVoting,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// FindBySlug event
func (h Handler) FindBySlug(c *gin.Context) {
	eventSlug, ok := handler.GetSlugParameter(c, "eventSlug")
	if !ok {
		return
	}

	event, err := h.eventService.FindBySlug(eventSlug)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// List published events
func (h Handler) List(c *gin.Context) {
	events, err := h.eventService.FindAllPublished()
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// ListMine lists the events authored by the current user.
func (h Handler) ListMine(c *gin.Context) {
	actor := handler.GetActorFromContext(c)

	events, err := h.eventService.FindByAuthor(actor)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}
