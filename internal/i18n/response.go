package i18n

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/arachchispices/spicestore/internal/common/errorx"
)

// RespondWithError writes the JSON error response for err, translating the
// message when err carries a message ID. Unknown errors become ErrInternal
// with the raw error message, matching the catch-broadly policy of the API.
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *errorx.APIError
	if !errors.As(err, &apiErr) {
		c.JSON(errorx.ErrInternal.Status, gin.H{"error": err.Error(), "code": errorx.ErrInternal.Code})
		return
	}

	msg := TranslateMessage(c, apiErr.MessageID, nil)
	if msg == apiErr.MessageID {
		msg = apiErr.Message
	}
	c.JSON(apiErr.Status, gin.H{"error": msg, "code": apiErr.Code})
}

// RespondWithMessage writes a success response whose message is translated.
func RespondWithMessage(c *gin.Context, status int, msgID string) {
	c.JSON(status, gin.H{"message": TranslateMessage(c, msgID, nil)})
}
