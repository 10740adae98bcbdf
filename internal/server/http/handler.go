// Package http exposes the game service as a REST API.
package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"abchess/internal/core"
	"abchess/internal/game"
	"abchess/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// engineMoveRequest asks the engine to move for the side to play.
const engineMoveRequest = "cccc"

// Handler routes HTTP requests to the service.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func NewFiberApp(svc *service.Service, devMode bool) *fiber.App {
	h := NewHandler(svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrCodeRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.GetGame)
	api.Delete("/games/:gameId", h.DeleteGame)
	api.Post("/games/:gameId/moves", h.MakeMove)
	api.Post("/games/:gameId/undo", h.UndoMove)
	api.Get("/games/:gameId/board", h.GetBoard)

	return app
}

func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrCodeInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrCodeInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrCodeGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrCodeInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrCodeRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// Health reports service and storage status.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// CreateGame creates a new game with the requested player seats.
func (h *Handler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return nil
	}

	id, err := h.svc.CreateGame(req.Upper, req.Down)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrCodeInvalidRequest,
		})
	}

	resp, err := h.svc.GameResponse(id)
	if err != nil {
		return gameError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetGame retrieves current game state.
func (h *Handler) GetGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}

	resp, err := h.svc.GameResponse(gameID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(resp)
}

// MakeMove applies a human move, or an engine move for "cccc".
func (h *Handler) MakeMove(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return nil
	}

	var err error
	if req.Move == engineMoveRequest {
		_, err = h.svc.EngineMove(gameID)
	} else {
		_, err = h.svc.MakeMove(gameID, req.Move)
	}
	if err != nil {
		return gameError(c, err)
	}

	resp, err := h.svc.GameResponse(gameID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(resp)
}

// UndoMove reverses plies.
func (h *Handler) UndoMove(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}
	req, ok := validatedBody[core.UndoRequest](c)
	if !ok {
		return nil
	}

	if err := h.svc.Undo(gameID, req.Count); err != nil {
		return gameError(c, err)
	}

	resp, err := h.svc.GameResponse(gameID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(resp)
}

// GetBoard renders the current board.
func (h *Handler) GetBoard(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}

	resp, err := h.svc.BoardResponse(gameID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(resp)
}

// DeleteGame removes a game.
func (h *Handler) DeleteGame(c *fiber.Ctx) error {
	gameID, ok := gameIDParam(c)
	if !ok {
		return nil
	}

	if err := h.svc.DeleteGame(gameID); err != nil {
		return gameError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// gameError maps service and game errors to API responses.
func gameError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "invalid move",
			Code:  core.ErrCodeInvalidMove,
		})
	case errors.Is(err, game.ErrNotYourPiece):
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "piece does not belong to the moving side",
			Code:  core.ErrCodeNotYourPiece,
		})
	case errors.Is(err, game.ErrGameOver):
		return c.Status(fiber.StatusConflict).JSON(core.ErrorResponse{
			Error: "game is over",
			Code:  core.ErrCodeGameOver,
		})
	case strings.Contains(err.Error(), "not found"):
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrCodeGameNotFound,
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrCodeInvalidRequest,
		})
	}
}
