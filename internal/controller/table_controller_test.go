package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/bughouse-backend/internal/middleware"
	"github.com/benbeisheim/bughouse-backend/internal/service"
)

func newTestApp() *fiber.App {
	logger := zerolog.Nop()
	tableService := service.NewTableService(service.NewTableManager(logger))
	tc := NewTableController(tableService, logger)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsurePlayerID())
	routes := api.Group("/table")
	routes.Post("/matchmaking/join", tc.JoinMatchmaking)
	routes.Post("/matchmaking/leave", tc.LeaveMatchmaking)
	routes.Get("/matchmaking/status", tc.MatchmakingStatus)
	routes.Post("/create", tc.CreateTable)
	routes.Post("/join/:tableId", tc.JoinTable)
	routes.Get("/:tableId", tc.GetTableState)
	routes.Get("/:tableId/board/:board/svg", tc.BoardSVG)
	routes.Get("/:tableId/board/:board/moves", tc.LegalMoves)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, playerID string) (int, []byte, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(middleware.PlayerIDHeader, playerID)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return resp.StatusCode, body, resp.Header.Get(fiber.HeaderContentType)
}

func createTable(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body, _ := do(t, app, "POST", "/api/table/create", "host")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", status, body)
	}
	var created struct {
		TableID string `json:"table_id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if created.TableID == "" {
		t.Fatal("empty table id")
	}
	return created.TableID
}

func TestJoinTable(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	tableID := createTable(t, app)

	status, body, _ := do(t, app, "POST", "/api/table/join/"+tableID+"?board=B&color=black", "p0")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", status, body)
	}
	var joined struct {
		Board   string `json:"board"`
		Color   string `json:"color"`
		Partner string `json:"partner"`
	}
	if err := json.Unmarshal(body, &joined); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if joined.Board != "B" || joined.Color != "black" || joined.Partner != "A-black" {
		t.Errorf("unexpected seat: got=%+v", joined)
	}

	tests := []struct {
		name       string
		target     string
		player     string
		wantStatus int
	}{
		{name: "seat taken", target: "/api/table/join/" + tableID + "?board=B&color=black", player: "p1", wantStatus: fiber.StatusConflict},
		{name: "bad seat", target: "/api/table/join/" + tableID + "?board=C&color=black", player: "p1", wantStatus: fiber.StatusBadRequest},
		{name: "first free", target: "/api/table/join/" + tableID, player: "p1", wantStatus: fiber.StatusOK},
		{name: "second", target: "/api/table/join/" + tableID, player: "p2", wantStatus: fiber.StatusOK},
		{name: "third", target: "/api/table/join/" + tableID, player: "p3", wantStatus: fiber.StatusOK},
		{name: "full", target: "/api/table/join/" + tableID, player: "p4", wantStatus: fiber.StatusConflict},
		{name: "missing table", target: "/api/table/join/nope", player: "p4", wantStatus: fiber.StatusNotFound},
	}
	for _, tt := range tests {
		if status, body, _ := do(t, app, "POST", tt.target, tt.player); status != tt.wantStatus {
			t.Errorf("%s: unexpected status: got=%d want=%d body=%s", tt.name, status, tt.wantStatus, body)
		}
	}

	status, body, _ = do(t, app, "GET", "/api/table/"+tableID, "p0")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", status, body)
	}
	var state service.TableState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(state.Players) != 4 || len(state.Boards) != 2 {
		t.Errorf("unexpected state: got=%+v", state)
	}
}

func TestBoardEndpoints(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	tableID := createTable(t, app)

	status, body, contentType := do(t, app, "GET", "/api/table/"+tableID+"/board/A/svg?square=g1", "p0")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", status, body)
	}
	if contentType != "image/svg+xml" {
		t.Errorf("unexpected content type: got=%s", contentType)
	}
	if !strings.Contains(string(body), "<svg") {
		t.Errorf("body is not an svg document: %s", body)
	}

	status, body, _ = do(t, app, "GET", "/api/table/"+tableID+"/board/a/moves?square=e2", "p0")
	if status != fiber.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", status, body)
	}
	var moves struct {
		Moves []string `json:"moves"`
	}
	if err := json.Unmarshal(body, &moves); err != nil {
		t.Fatal("unexpected error:", err)
	}
	sort.Strings(moves.Moves)
	if strings.Join(moves.Moves, ",") != "e3,e4" {
		t.Errorf("unexpected moves: got=%v want=[e3 e4]", moves.Moves)
	}

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{name: "bad board", target: "/api/table/" + tableID + "/board/C/svg", wantStatus: fiber.StatusBadRequest},
		{name: "bad square", target: "/api/table/" + tableID + "/board/A/moves?square=z9", wantStatus: fiber.StatusBadRequest},
		{name: "missing table", target: "/api/table/nope/board/A/svg", wantStatus: fiber.StatusNotFound},
		{name: "missing state", target: "/api/table/nope", wantStatus: fiber.StatusNotFound},
	}
	for _, tt := range tests {
		if status, body, _ := do(t, app, "GET", tt.target, "p0"); status != tt.wantStatus {
			t.Errorf("%s: unexpected status: got=%d want=%d body=%s", tt.name, status, tt.wantStatus, body)
		}
	}
}

func TestMatchmakingEndpoints(t *testing.T) {
	t.Parallel()

	app := newTestApp()
	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "join", method: "POST", target: "/api/table/matchmaking/join", wantStatus: fiber.StatusOK, wantBody: "queued"},
		{name: "join twice", method: "POST", target: "/api/table/matchmaking/join", wantStatus: fiber.StatusConflict},
		{name: "status", method: "GET", target: "/api/table/matchmaking/status", wantStatus: fiber.StatusOK, wantBody: "waiting"},
		{name: "leave", method: "POST", target: "/api/table/matchmaking/leave", wantStatus: fiber.StatusOK, wantBody: "left"},
		{name: "leave twice", method: "POST", target: "/api/table/matchmaking/leave", wantStatus: fiber.StatusNotFound},
	}
	for _, tt := range tests {
		status, body, _ := do(t, app, tt.method, tt.target, "p0")
		if status != tt.wantStatus {
			t.Errorf("%s: unexpected status: got=%d want=%d body=%s", tt.name, status, tt.wantStatus, body)
		}
		if tt.wantBody != "" && !strings.Contains(string(body), tt.wantBody) {
			t.Errorf("%s: unexpected body: got=%s want substring %s", tt.name, body, tt.wantBody)
		}
	}
}
