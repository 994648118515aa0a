// Package handler implements the HTTP endpoints of the spicestore API.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arachchispices/spicestore/internal/apiserver/session"
	"github.com/arachchispices/spicestore/internal/common/errorx"
)

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorx.ErrInvalidInput.WithMessage("invalid id")
	}
	return id, nil
}

// canMutate reports whether the principal may modify a record owned by
// createdBy. Admins may modify anything.
func canMutate(p *session.Principal, createdBy int64) bool {
	return p.IsAdmin() || p.UserID == createdBy
}
