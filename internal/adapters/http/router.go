package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/scrimkit/scrimbot/internal/adapters/chat"
	"github.com/scrimkit/scrimbot/internal/adapters/command"
	"github.com/scrimkit/scrimbot/internal/app"
	"github.com/scrimkit/scrimbot/internal/config"
	"github.com/scrimkit/scrimbot/internal/domain"
)

// ClientTokenMiddleware tags every caller with a stable token; it doubles
// as the command author id for requests that don't carry one.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// SetupRouter wires the command API and the websocket chat gateway.
func SetupRouter(ctx context.Context, cfg *config.Config, d *command.Dispatcher, registry *app.Registry, presence chat.Presence) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ScrimSessions", store))
	r.Use(ClientTokenMiddleware())

	api := r.Group("/api")

	// POST /api/guilds/:guild/commands — run one chat command.
	api.POST("/guilds/:guild/commands", func(c *gin.Context) {
		var req struct {
			Text    string `json:"text"`
			Channel string `json:"channel"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid text"})
			return
		}
		reply := d.Handle(c.Request.Context(), command.Request{
			Guild:  domain.GuildID(c.Param("guild")),
			Origin: domain.ChannelID(req.Channel),
			Author: domain.ParticipantID(c.GetString("client_token")),
			Text:   req.Text,
		})
		if reply == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "not a command"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	})

	// GET /api/matches — live match snapshots.
	api.GET("/matches", func(c *gin.Context) {
		type matchInfo struct {
			ID        domain.MatchID `json:"id"`
			Guild     domain.GuildID `json:"guild"`
			Game      string         `json:"game"`
			Map       string         `json:"map"`
			CreatedAt string         `json:"created_at"`
			Attackers int            `json:"attackers"`
			Defenders int            `json:"defenders"`
		}
		snapshot := registry.Snapshot()
		out := make([]matchInfo, 0, len(snapshot))
		for _, m := range snapshot {
			out = append(out, matchInfo{
				ID:        m.ID,
				Guild:     m.Guild,
				Game:      m.Game,
				Map:       m.Map,
				CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				Attackers: len(m.Attackers.Players),
				Defenders: len(m.Defenders.Players),
			})
		}
		c.JSON(http.StatusOK, gin.H{"matches": out})
	})

	// GET /ws/chat?guild={guild}&channel={channel}&name={username}
	r.GET("/ws/chat", func(c *gin.Context) {
		guild := domain.GuildID(c.Query("guild"))
		username := c.Query("name")
		if guild == "" || username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing guild or name"})
			return
		}
		origin := domain.ChannelID(c.DefaultQuery("channel", "general"))

		upgrader := websocket.Upgrader{
			// TODO: restrict origins once the web client has a fixed host.
			CheckOrigin: func(r *http.Request) bool { return true },
		}
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("websocket upgrade failed")
			return
		}

		member := domain.Participant{
			ID:       domain.ParticipantID(c.GetString("client_token")),
			Username: username,
		}
		if err := presence.Join(guild, member); err != nil {
			_ = ws.WriteMessage(websocket.TextMessage, []byte("Cannot join: "+err.Error()))
			_ = ws.Close()
			return
		}

		sess := chat.NewSession(guild, origin, member, ws, d)
		sess.StartWriteLoop(ctx)
		sess.StartReadLoop(ctx, presence)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
