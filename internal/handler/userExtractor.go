package handler

import (
	"errors"

	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func GetUserFromContext(c *gin.Context) (*model.User, error) {
	userData, exists := c.Get("user")

	if !exists {
		return nil, errors.New("user not found on context")
	}

	user, ok := userData.(*model.User)
	if !ok {
		return nil, errors.New("failed to parse user data")
	}
	return user, nil
}

// GetActorFromContext resolves the actor for the request. Requests that did
// not pass authentication resolve to the anonymous actor.
func GetActorFromContext(c *gin.Context) model.Actor {
	user, err := GetUserFromContext(c)
	if err != nil {
		return model.Anonymous()
	}
	return model.NewActor(user)
}
