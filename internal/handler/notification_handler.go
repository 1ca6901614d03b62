package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-tracker/internal/middleware"
	"github.com/noah-isme/assignment-tracker/internal/service"
	"github.com/noah-isme/assignment-tracker/internal/utils"
)

// NotificationHandler serves a student's notifications over REST, SSE and websocket.
type NotificationHandler struct {
	service   service.NotificationService
	logger    zerolog.Logger
	keepAlive time.Duration
	lifetime  context.Context
}

// socketCommand is sent by websocket clients to acknowledge or dismiss notifications.
type socketCommand struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// NewNotificationHandler constructs a handler instance. Streams end when lifetime is done.
func NewNotificationHandler(lifetime context.Context, service service.NotificationService, keepAlive time.Duration, logger zerolog.Logger) *NotificationHandler {
	if lifetime == nil {
		lifetime = context.Background()
	}
	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}

	return &NotificationHandler{
		service:   service,
		logger:    logger.With().Str("component", "notification_handler").Logger(),
		keepAlive: keepAlive,
		lifetime:  lifetime,
	}
}

// Register binds the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("", h.list)
	router.Get("/unseen-count", h.unseenCount)
	router.Get("/stream", h.stream)
	router.Get("/ws", websocket.New(h.socket))
	router.Patch("/:id/seen", h.markSeen)
	router.Delete("/:id", h.dismiss)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	notifications, err := h.service.List(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "notifications", notifications)
}

func (h *NotificationHandler) unseenCount(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	count, err := h.service.UnseenCount(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "unseen notifications", fiber.Map{"count": count})
}

func (h *NotificationHandler) markSeen(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	notification, err := h.service.MarkSeen(requestContext(c), c.Params("id"), studentID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "notification updated", notification)
}

func (h *NotificationHandler) dismiss(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	if err := h.service.Dismiss(requestContext(c), c.Params("id"), studentID); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "notification dismissed", nil)
}

func (h *NotificationHandler) stream(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	correlationID := middleware.GetCorrelationID(c)
	ctx, cancel := context.WithCancel(middleware.ContextWithCorrelation(h.lifetime, correlationID))
	updates := h.service.Subscribe(ctx, studentID, "sse")
	logger := h.logger.With().Str("student_id", studentID).Str("correlation_id", correlationID).Logger()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(h.keepAlive)
		defer ticker.Stop()

		for {
			select {
			case feed, ok := <-updates:
				if !ok {
					return
				}
				if err := writeFeedEvent(w, feed); err != nil {
					logger.Debug().Err(err).Msg("notification stream closed")
					return
				}
			case <-ticker.C:
				if err := writeKeepAlive(w); err != nil {
					logger.Debug().Err(err).Msg("notification stream closed")
					return
				}
			}
		}
	})

	return nil
}

func (h *NotificationHandler) socket(conn *websocket.Conn) {
	studentID, _ := conn.Locals(middleware.LocalUserID).(string)
	if studentID == "" {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "user id missing"))
		_ = conn.Close()
		return
	}

	correlationID, _ := conn.Locals(middleware.LocalCorrelationID).(string)
	ctx, cancel := context.WithCancel(middleware.ContextWithCorrelation(h.lifetime, correlationID))
	defer cancel()

	logger := h.logger.With().Str("student_id", studentID).Str("correlation_id", correlationID).Logger()
	logger.Info().Msg("notification websocket connected")
	defer logger.Info().Msg("notification websocket disconnected")

	go h.readCommands(ctx, cancel, conn, studentID, logger)

	updates := h.service.Subscribe(ctx, studentID, "websocket")
	for feed := range updates {
		if err := conn.WriteJSON(feed); err != nil {
			logger.Debug().Err(err).Msg("notification websocket write failed")
			return
		}
	}
}

// readCommands applies client commands until the connection fails, then cancels ctx.
func (h *NotificationHandler) readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, studentID string, logger zerolog.Logger) {
	defer cancel()

	for {
		var command socketCommand
		if err := conn.ReadJSON(&command); err != nil {
			return
		}

		var err error
		switch command.Action {
		case "seen":
			_, err = h.service.MarkSeen(ctx, command.ID, studentID)
		case "dismiss":
			err = h.service.Dismiss(ctx, command.ID, studentID)
		default:
			err = fmt.Errorf("unknown action %q", command.Action)
		}
		if err != nil {
			logger.Debug().Err(err).Str("action", command.Action).Msg("websocket command rejected")
		}
	}
}

func writeFeedEvent(w *bufio.Writer, feed interface{}) error {
	payload, err := json.Marshal(feed)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: notifications\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, ": keep-alive %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.Flush()
}
