package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"abchess/internal/core"
	"abchess/internal/eval"
	"abchess/internal/search"
	"abchess/internal/service"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *service.Service) {
	t.Helper()
	svc := service.New(search.New(eval.New(eval.Default())), nil)
	t.Cleanup(func() { svc.Close() })
	return NewFiberApp(svc, true), svc
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, out.Bytes()
}

func createGame(t *testing.T, app *fiber.App) core.GameResponse {
	t.Helper()
	status, body := doJSON(t, app, "POST", "/api/v1/games", core.CreateGameRequest{
		Upper: core.PlayerConfig{Type: core.PlayerComputer, Depth: 1},
		Down:  core.PlayerConfig{Type: core.PlayerHuman},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create game status = %d, body %s", status, body)
	}
	var resp core.GameResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/health", nil)
	if status != fiber.StatusOK {
		t.Fatalf("health status = %d", status)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("health status field = %v", resp["status"])
	}
	if resp["storage"] != "disabled" {
		t.Errorf("storage field = %v, want disabled", resp["storage"])
	}
}

func TestCreateGame(t *testing.T) {
	app, _ := newTestApp(t)
	resp := createGame(t, app)

	if resp.GameID == "" {
		t.Fatal("create game returned no ID")
	}
	if resp.Turn != "down" {
		t.Errorf("opening turn = %q, want down", resp.Turn)
	}
	if resp.Players.Upper.Type != core.PlayerComputer {
		t.Errorf("upper seat = %+v, want computer", resp.Players.Upper)
	}
}

func TestCreateGameValidation(t *testing.T) {
	app, _ := newTestApp(t)

	// Player type outside the allowed set
	status, body := doJSON(t, app, "POST", "/api/v1/games", map[string]interface{}{
		"upper": map[string]interface{}{"type": 7},
		"down":  map[string]interface{}{"type": 1},
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("invalid player type status = %d, body %s", status, body)
	}

	var errResp core.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != core.ErrCodeInvalidRequest {
		t.Errorf("error code = %q, want %q", errResp.Code, core.ErrCodeInvalidRequest)
	}
}

func TestContentTypeRejected(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/games", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Errorf("plain text content status = %d, want 415", resp.StatusCode)
	}
}

func TestMoveFlow(t *testing.T) {
	app, _ := newTestApp(t)
	game := createGame(t, app)
	base := "/api/v1/games/" + game.GameID

	status, body := doJSON(t, app, "POST", base+"/moves", core.MoveRequest{Move: "e2e4"})
	if status != fiber.StatusOK {
		t.Fatalf("move status = %d, body %s", status, body)
	}
	var resp core.GameResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Moves) != 1 || resp.Moves[0] != "e2e4" {
		t.Errorf("moves = %v, want [e2e4]", resp.Moves)
	}
	if resp.Turn != "upper" {
		t.Errorf("turn = %q after the move, want upper", resp.Turn)
	}

	// "cccc" asks the engine to reply
	status, body = doJSON(t, app, "POST", base+"/moves", core.MoveRequest{Move: "cccc"})
	if status != fiber.StatusOK {
		t.Fatalf("engine move status = %d, body %s", status, body)
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Moves) != 2 {
		t.Errorf("moves = %v after engine reply, want 2", resp.Moves)
	}
	if resp.Turn != "down" {
		t.Errorf("turn = %q after engine reply, want down", resp.Turn)
	}
}

func TestInvalidMoveCode(t *testing.T) {
	app, _ := newTestApp(t)
	game := createGame(t, app)

	status, body := doJSON(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves",
		core.MoveRequest{Move: "e2e5"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("illegal move status = %d", status)
	}
	var errResp core.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != core.ErrCodeInvalidMove {
		t.Errorf("error code = %q, want %q", errResp.Code, core.ErrCodeInvalidMove)
	}
}

func TestNotYourPieceCode(t *testing.T) {
	app, _ := newTestApp(t)
	game := createGame(t, app)

	status, body := doJSON(t, app, "POST", "/api/v1/games/"+game.GameID+"/moves",
		core.MoveRequest{Move: "e7e5"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("out-of-turn move status = %d", status)
	}
	var errResp core.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != core.ErrCodeNotYourPiece {
		t.Errorf("error code = %q, want %q", errResp.Code, core.ErrCodeNotYourPiece)
	}
}

func TestUndoFlow(t *testing.T) {
	app, _ := newTestApp(t)
	game := createGame(t, app)
	base := "/api/v1/games/" + game.GameID

	doJSON(t, app, "POST", base+"/moves", core.MoveRequest{Move: "e2e4"})

	status, body := doJSON(t, app, "POST", base+"/undo", core.UndoRequest{Count: 1})
	if status != fiber.StatusOK {
		t.Fatalf("undo status = %d, body %s", status, body)
	}
	var resp core.GameResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Moves) != 0 {
		t.Errorf("moves after undo = %v, want empty", resp.Moves)
	}
}

func TestBoardEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	game := createGame(t, app)

	status, body := doJSON(t, app, "GET", "/api/v1/games/"+game.GameID+"/board", nil)
	if status != fiber.StatusOK {
		t.Fatalf("board status = %d", status)
	}
	var resp core.BoardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Board == "" || resp.Turn != "down" {
		t.Errorf("board response = %+v", resp)
	}
}

func TestGameIDValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/api/v1/games/not-a-uuid", nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("malformed ID status = %d, body %s", status, body)
	}

	unknown := "00000000-0000-0000-0000-000000000000"
	status, body = doJSON(t, app, "GET", "/api/v1/games/"+unknown, nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown ID status = %d, body %s", status, body)
	}
	var errResp core.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != core.ErrCodeGameNotFound {
		t.Errorf("error code = %q, want %q", errResp.Code, core.ErrCodeGameNotFound)
	}
}

func TestDeleteGameEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	game := createGame(t, app)

	status, _ := doJSON(t, app, "DELETE", "/api/v1/games/"+game.GameID, nil)
	if status != fiber.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", status)
	}

	status, _ = doJSON(t, app, "GET", "/api/v1/games/"+game.GameID, nil)
	if status != fiber.StatusNotFound {
		t.Errorf("deleted game status = %d, want 404", status)
	}
}

func TestRateLimitKeyFromForwardedFor(t *testing.T) {
	app, _ := newTestApp(t)

	// Exhaust the per-IP allowance for one forwarded address; a different
	// address must still get through.
	var limited bool
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/api/v1/games/00000000-0000-0000-0000-000000000000", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode == fiber.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Skip("rate limiter not triggered within the request loop")
	}

	req := httptest.NewRequest("GET", "/api/v1/games/00000000-0000-0000-0000-000000000000", nil)
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", 9))
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == fiber.StatusTooManyRequests {
		t.Error("different forwarded address hit the same rate bucket")
	}
}
