package service

import (
	"io"

	"github.com/lk2023060901/ai-session-backend/internal/pkg/metrics"
	"github.com/lk2023060901/ai-session-backend/internal/pkg/response"
	"github.com/lk2023060901/ai-session-backend/internal/pkg/sse"
	"github.com/lk2023060901/ai-session-backend/internal/session/biz"
	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectionService handles HTTP requests for the current selection
type SelectionService struct {
	store  *biz.SelectionStore
	loader *biz.EntityLoader
	hub    *sse.Hub
	logger *zap.Logger
}

// NewSelectionService creates a new selection service
func NewSelectionService(store *biz.SelectionStore, loader *biz.EntityLoader, hub *sse.Hub, logger *zap.Logger) *SelectionService {
	return &SelectionService{
		store:  store,
		loader: loader,
		hub:    hub,
		logger: logger,
	}
}

// RegisterRoutes registers selection routes
func (s *SelectionService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/selection", s.GetSelection)
	r.PUT("/selection/assistant", s.SetAssistant)
	r.PUT("/selection/topic", s.SetTopic)
	r.GET("/selection/events", s.StreamEvents)
}

// SelectionView is the API shape of the current selection
type SelectionView struct {
	Assistant *types.Assistant `json:"assistant"`
	TopicID   string           `json:"topic_id"`
}

// GetSelection returns the currently selected assistant and topic
func (s *SelectionService) GetSelection(c *gin.Context) {
	snap := s.store.Snapshot()
	response.Success(c, SelectionView{
		Assistant: snap.CurrentAssistant,
		TopicID:   snap.CurrentTopicID,
	})
}

// SetAssistant selects an assistant by id. The assistant is hydrated before
// it is published so subscribers always observe full entities; any topic
// mismatch is corrected by the reconciler.
func (s *SelectionService) SetAssistant(c *gin.Context) {
	var req struct {
		AssistantID string `json:"assistant_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hydrated, err := s.loader.LoadAssistant(c.Request.Context(), req.AssistantID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	s.store.SetCurrentAssistant(hydrated)
	response.Success(c, hydrated)
}

// SetTopic selects a topic by id. Ownership is not checked here; the
// reconciler verifies it and switches away if the topic is foreign.
func (s *SelectionService) SetTopic(c *gin.Context) {
	var req struct {
		TopicID string `json:"topic_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	s.store.SetCurrentTopicID(req.TopicID)
	response.Success(c, gin.H{"topic_id": req.TopicID})
}

// StreamEvents streams selection-change events over SSE
func (s *SelectionService) StreamEvents(c *gin.Context) {
	client := &sse.Client{
		ID:      uuid.New().String(),
		Channel: make(chan sse.Event, 16),
	}

	s.hub.Register(client)
	metrics.IncrementSSEConnections()
	defer func() {
		s.hub.Unregister(client)
		metrics.DecrementSSEConnections()
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	s.logger.Debug("selection event stream opened", zap.String("client_id", client.ID))

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case event, ok := <-client.Channel:
			if !ok {
				return false
			}
			if _, err := io.WriteString(w, event.FormatSSE()); err != nil {
				return false
			}
			return true
		}
	})
}
