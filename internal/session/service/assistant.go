package service

import (
	"github.com/lk2023060901/ai-session-backend/internal/pkg/response"
	"github.com/lk2023060901/ai-session-backend/internal/session/biz"
	"github.com/lk2023060901/ai-session-backend/internal/session/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantService handles HTTP requests for assistant and topic operations
type AssistantService struct {
	useCase *biz.AssistantUseCase
	store   *biz.SelectionStore
	loader  *biz.EntityLoader
	logger  *zap.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(useCase *biz.AssistantUseCase, store *biz.SelectionStore, loader *biz.EntityLoader, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		useCase: useCase,
		store:   store,
		loader:  loader,
		logger:  logger,
	}
}

// RegisterRoutes registers assistant routes
func (s *AssistantService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/assistants", s.ListAssistants)
	r.POST("/assistants", s.CreateAssistant)
	r.GET("/assistants/:assistant_id", s.GetAssistant)
	r.POST("/assistants/:assistant_id/topics", s.CreateTopic)
	r.PUT("/topics/:topic_id/touch", s.TouchTopic)
}

// ListAssistants lists all assistants and refreshes the selection store's
// collection, which re-triggers reconciliation
func (s *AssistantService) ListAssistants(c *gin.Context) {
	var filter types.AssistantFilter
	filter.Keyword = c.Query("keyword")

	assistants, err := s.useCase.ListAssistants(c.Request.Context(), &filter)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if filter.Keyword == "" {
		s.store.SetAssistants(assistants)
	}

	response.Success(c, assistants)
}

// CreateAssistant creates a new assistant with a default topic
func (s *AssistantService) CreateAssistant(c *gin.Context) {
	var req biz.CreateAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assistant, err := s.useCase.CreateAssistant(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	s.refreshCollection(c)
	response.Created(c, assistant)
}

// GetAssistant retrieves an assistant with hydrated topics
func (s *AssistantService) GetAssistant(c *gin.Context) {
	assistant, err := s.useCase.GetAssistant(c.Request.Context(), c.Param("assistant_id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, assistant)
}

// CreateTopic creates a new topic under an assistant
func (s *AssistantService) CreateTopic(c *gin.Context) {
	assistantID := c.Param("assistant_id")

	// The body is optional; a missing or malformed body falls back to the
	// default topic name.
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Name = ""
	}

	topic, err := s.useCase.CreateTopic(c.Request.Context(), assistantID, req.Name)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	s.republishCurrent(c, assistantID)
	response.Created(c, topic)
}

// TouchTopic records activity on a topic, bumping its recency
func (s *AssistantService) TouchTopic(c *gin.Context) {
	topicID := c.Param("topic_id")

	if err := s.useCase.TouchTopic(c.Request.Context(), topicID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"topic_id": topicID})
}

// refreshCollection reloads the assistant collection into the selection store
func (s *AssistantService) refreshCollection(c *gin.Context) {
	assistants, err := s.useCase.ListAssistants(c.Request.Context(), nil)
	if err != nil {
		s.logger.Warn("failed to refresh assistant collection", zap.Error(err))
		return
	}
	s.store.SetAssistants(assistants)
}

// republishCurrent re-hydrates the currently selected assistant when its
// topics changed, so the published entity stays in step with storage
func (s *AssistantService) republishCurrent(c *gin.Context, assistantID string) {
	snap := s.store.Snapshot()
	if snap.CurrentAssistant == nil || snap.CurrentAssistant.ID != assistantID {
		return
	}

	hydrated, err := s.loader.LoadAssistant(c.Request.Context(), assistantID)
	if err != nil {
		s.logger.Warn("failed to re-hydrate current assistant", zap.Error(err))
		return
	}
	s.store.SetCurrentAssistant(hydrated)
}
