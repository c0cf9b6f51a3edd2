package live

import (
	"io"
	"log/slog"

	"github.com/confdeck/deck-manager/internal/handler"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(logger *slog.Logger, broker broker) Handler {
	return Handler{
		logger: logger,
		broker: broker,
	}
}

type broker interface {
	Subscribe(user model.User)
	Unsubscribe(id uint)
	Receive(id uint) (Event, bool)
}

type Handler struct {
	logger *slog.Logger
	broker broker
}

// Subscribe streams events to the current user over SSE. Proposal authors
// receive a message whenever one of their proposals is rated.
func (h Handler) Subscribe(c *gin.Context) {
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.broker.Subscribe(*user)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	ctx := c.Request.Context()

	defer func() {
		h.broker.Unsubscribe(user.ID)
		h.logger.InfoContext(ctx, "Closing subscription", "user", user.ID)
	}()

	go func() {
		<-ctx.Done()
		h.broker.Unsubscribe(user.ID)
	}()

	c.Stream(func(w io.Writer) bool {
		if event, ok := h.broker.Receive(user.ID); ok {
			c.SSEvent(event.Type, event.Message)
			return true
		}
		return false
	})
}
