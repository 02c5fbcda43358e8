package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prmf/premium-api/internal/adapters/http/dto"
	"github.com/prmf/premium-api/internal/adapters/http/middleware"
	"github.com/prmf/premium-api/internal/app"
	"github.com/prmf/premium-api/internal/domain"
)

// HistoryHandler handles quote history HTTP endpoints.
type HistoryHandler struct {
	service *app.HistoryService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(service *app.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		service: service,
	}
}

// HistoryItem is the HTTP response structure for a single saved quote.
type HistoryItem struct {
	ID            string  `json:"id"`
	Age           int     `json:"age"`
	BenefitOption string  `json:"benefit_option"`
	FamilySize    string  `json:"family_size"`
	PremiumAmount float64 `json:"premium_amount"`
	PaymentType   string  `json:"payment_type"`
	BenefitName   string  `json:"benefit_name"`
	CreatedAt     string  `json:"created_at"`
}

// toHistoryItems converts domain history records to HTTP responses.
// Always returns a non-nil slice so an empty history serializes as [].
func toHistoryItems(records []domain.HistoryRecord) []HistoryItem {
	items := make([]HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, HistoryItem{
			ID:            r.ID,
			Age:           r.Age,
			BenefitOption: string(r.BenefitOption),
			FamilySize:    string(r.FamilySize),
			PremiumAmount: r.PremiumAmount,
			PaymentType:   string(r.PaymentType),
			BenefitName:   r.BenefitLabel,
			CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}

// List handles GET /api/v1/quotes
// Returns the authenticated member's saved quotes, newest first.
//
// @Summary List saved quotes
// @Description Fetches the caller's quote history, newest first, capped at 50 entries
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /api/v1/quotes [get]
func (h *HistoryHandler) List(c *gin.Context) {
	token := middleware.BearerToken(c.Request)

	records, err := h.service.List(c.Request.Context(), token)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(toHistoryItems(records)))
}

// RegisterHistoryRoutes registers history routes on the given router group.
func (h *HistoryHandler) RegisterHistoryRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.List)
}
