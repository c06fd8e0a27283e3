package http

import (
	"context"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"HaliteBot/internal/bot/domain"
	"HaliteBot/internal/replay"
	"HaliteBot/internal/shared/security"
	"HaliteBot/modules/kit/logx"
)

type SnapshotSource interface {
	Latest(ctx context.Context) (domain.TurnSnapshot, bool, error)
	History(ctx context.Context, limit int) ([]domain.TurnSnapshot, error)
}

type ReplaySource interface {
	ListBySession(ctx context.Context, session string, limit int) ([]replay.TurnRecord, error)
}

type DebugHandler struct {
	board        SnapshotSource
	replays      ReplaySource
	session      string
	requireToken bool
	log          logx.Logger
}

func NewDebugHandler(board SnapshotSource, replays ReplaySource, session string, requireToken bool, log logx.Logger) *DebugHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &DebugHandler{board: board, replays: replays, session: session, requireToken: requireToken, log: log}
}

func (h *DebugHandler) RegisterRoutes(group *gin.RouterGroup) {
	debug := group.Group("/debug")
	if h.requireToken {
		debug.Use(bearerAuth())
	}
	debug.GET("/state", h.State)
	debug.GET("/attack", h.Attack)
	debug.GET("/turns", h.Turns)
	debug.GET("/replay", h.Replay)
}

// bearerAuth 校验 Authorization: Bearer <jwt>。
func bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(nethttp.StatusUnauthorized, failure(codeUnauthorized, "缺少 token"))
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(nethttp.StatusUnauthorized, failure(codeUnauthorized, "token 无效"))
			return
		}
		c.Set("operator", claims.Name)
		c.Next()
	}
}

func (h *DebugHandler) State(c *gin.Context) {
	snap, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(nethttp.StatusOK, success(snap))
}

func (h *DebugHandler) Attack(c *gin.Context) {
	snap, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(nethttp.StatusOK, success(attackView{
		Turn:      snap.Turn,
		Attacking: snap.Attacking,
		Enemy:     snap.Enemy,
		Width:     snap.Width,
		Height:    snap.Height,
		Rows:      snap.LabelRows(),
	}))
}

func (h *DebugHandler) Turns(c *gin.Context) {
	limit, ok := h.limit(c)
	if !ok {
		return
	}
	hist, err := h.board.History(c.Request.Context(), limit)
	if err != nil {
		h.error(c, "debug history", err)
		return
	}
	c.JSON(nethttp.StatusOK, success(hist))
}

func (h *DebugHandler) Replay(c *gin.Context) {
	limit, ok := h.limit(c)
	if !ok {
		return
	}
	session := c.DefaultQuery("session", h.session)
	recs, err := h.replays.ListBySession(c.Request.Context(), session, limit)
	if err != nil {
		h.error(c, "debug replay", err)
		return
	}
	c.JSON(nethttp.StatusOK, success(recs))
}

func (h *DebugHandler) latest(c *gin.Context) (domain.TurnSnapshot, bool) {
	snap, ok, err := h.board.Latest(c.Request.Context())
	if err != nil {
		h.error(c, "debug latest", err)
		return domain.TurnSnapshot{}, false
	}
	if !ok {
		c.JSON(nethttp.StatusServiceUnavailable, failure(codeNotReady, "对局尚未开始"))
		return domain.TurnSnapshot{}, false
	}
	return snap, true
}

func (h *DebugHandler) limit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(nethttp.StatusBadRequest, failure(codeInvalidParam, "limit 参数有误"))
		return 0, false
	}
	return n, true
}

func (h *DebugHandler) error(c *gin.Context, action string, err error) {
	_ = c.Error(err)
	logx.ReportSysErrorWithLoggerContext(c.Request.Context(), h.log, logx.NewSysLog(action, err))
	c.JSON(nethttp.StatusInternalServerError, failure(codeSystemError, "系统错误"))
}
