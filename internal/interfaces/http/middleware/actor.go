package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

// ActorMiddleware reads the identity forwarded by the fronting auth proxy.
// Requests without X-Actor-ID pass through anonymously; use cases reject
// them when an actor is required.
type ActorMiddleware struct {
	logger logger.Interface
}

func NewActorMiddleware(logger logger.Interface) *ActorMiddleware {
	return &ActorMiddleware{logger: logger}
}

func (m *ActorMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(constants.HeaderActorID))
		if raw == "" {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			m.logger.Warnw("rejecting malformed actor header",
				"header", constants.HeaderActorID,
				"value", raw,
				"path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid "+constants.HeaderActorID+" header"))
			c.Abort()
			return
		}

		actor := auth.NewActor(uint(id), c.GetHeader(constants.HeaderActorRole))
		c.Set(constants.ContextKeyActorID, actor.ID)
		c.Set(constants.ContextKeyActorRole, actor.Role)
		c.Next()
	}
}

// GetActor returns the actor stored by Identify, or the zero Actor.
func GetActor(c *gin.Context) auth.Actor {
	id, ok := c.Get(constants.ContextKeyActorID)
	if !ok {
		return auth.Actor{}
	}
	actorID, _ := id.(uint)
	return auth.Actor{ID: actorID, Role: c.GetString(constants.ContextKeyActorRole)}
}
