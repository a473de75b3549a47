package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/scrimkit/scrimbot/internal/adapters/command"
	router "github.com/scrimkit/scrimbot/internal/adapters/http"
	"github.com/scrimkit/scrimbot/internal/adapters/memplat"
	"github.com/scrimkit/scrimbot/internal/app"
	"github.com/scrimkit/scrimbot/internal/app/orch"
	"github.com/scrimkit/scrimbot/internal/config"
	"github.com/scrimkit/scrimbot/internal/core"
)

func newTestRouter() (http.Handler, *memplat.Platform) {
	platform := memplat.New("ScrimPre")
	registry := app.NewRegistry()
	ctrl := &orch.Controller{
		Registry: registry,
		Rooms:    app.NewProvisioner(platform),
		Movers:   app.NewRelocator(platform),
		Platform: platform,
		Maps:     core.NewMapPool(core.DefaultMaps()),
		Clock:    core.SystemClock{},
		NewID:    uuid.NewString,
		Settings: orch.Settings{
			TeamSize:     5,
			MatchTTL:     2 * time.Hour,
			CategoryName: "PUGs",
			WaitingRoom:  "ScrimPre",
		},
	}
	cfg := &config.Config{Mode: "release", Secret: "test-secret"}
	d := &command.Dispatcher{Ctrl: ctrl}
	return router.SetupRouter(context.Background(), cfg, d, registry, platform), platform
}

func postCommand(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/guilds/g1/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCommandEndpointRunsInit(t *testing.T) {
	h, platform := newTestRouter()

	w := postCommand(t, h, `{"text":"!init","channel":"general"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Reply, "Ready")
	require.Equal(t, 1, platform.RoomCount("g1", "category"))
	require.Equal(t, 1, platform.RoomCount("g1", "voice"))
}

func TestCommandEndpointRejectsMissingText(t *testing.T) {
	h, _ := newTestRouter()
	w := postCommand(t, h, `{"channel":"general"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommandEndpointRejectsPlainChat(t *testing.T) {
	h, _ := newTestRouter()
	w := postCommand(t, h, `{"text":"hello there"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchesEndpointEmpty(t *testing.T) {
	h, _ := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Matches []json.RawMessage `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Matches)
}
