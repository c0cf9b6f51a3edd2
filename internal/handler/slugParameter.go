package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetSlugParameter(c *gin.Context, parameter string) (string, bool) {
	slug := c.Param(parameter)
	if slug == "" {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("missing path parameter %q", parameter))
		return "", false
	}
	return slug, true
}
