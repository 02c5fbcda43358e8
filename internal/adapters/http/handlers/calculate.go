package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prmf/premium-api/internal/adapters/http/dto"
	"github.com/prmf/premium-api/internal/adapters/http/middleware"
	"github.com/prmf/premium-api/internal/app"
	"github.com/prmf/premium-api/internal/domain"
)

// CalculateHandler handles premium calculation HTTP endpoints.
type CalculateHandler struct {
	service *app.CalculatorService
}

// NewCalculateHandler creates a new calculation handler.
func NewCalculateHandler(service *app.CalculatorService) *CalculateHandler {
	return &CalculateHandler{
		service: service,
	}
}

// QuoteResponse is the HTTP response structure for a computed premium quote.
type QuoteResponse struct {
	Age           int     `json:"age"`
	FamilySize    string  `json:"family_size"`
	BenefitOption string  `json:"benefit_option"`
	PremiumAmount float64 `json:"premium_amount"`
	PaymentType   string  `json:"payment_type"`
	Currency      string  `json:"currency"`
	Disclaimer    string  `json:"disclaimer"`
}

// toQuoteResponse converts a domain Quote to an HTTP response.
// The benefit option is rendered as its display label.
func toQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		Age:           q.Age,
		FamilySize:    string(q.FamilySize),
		BenefitOption: q.BenefitLabel,
		PremiumAmount: q.PremiumAmount,
		PaymentType:   string(q.PaymentType),
		Currency:      q.Currency,
		Disclaimer:    q.Disclaimer,
	}
}

// Calculate handles POST /api/v1/calculate
// Validates the request, looks up the premium rate, and returns the quote.
//
// @Summary Calculate a premium quote
// @Description Calculates a medical insurance premium from age, benefit option, and family size
// @Tags calculate
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /api/v1/calculate [post]
func (h *CalculateHandler) Calculate(c *gin.Context) {
	// Decode into an untyped payload so that validation can distinguish
	// missing fields, wrong types, and out-of-range values per field.
	// UseNumber keeps ages as json.Number instead of float64.
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		resp := dto.NewErrorResponse(
			dto.ErrorCodeInvalidRequest,
			"Invalid JSON in request body",
		).WithTraceID(dto.GetTraceID(c))
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	token := middleware.BearerToken(c.Request)

	quote, err := h.service.Calculate(c.Request.Context(), payload, token)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(toQuoteResponse(quote)))
}

// apiDescription documents the calculation endpoint for GET requests.
type apiDescription struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Endpoint    string            `json:"endpoint"`
	Description string            `json:"description"`
	Request     map[string]string `json:"request"`
	Example     map[string]any    `json:"example"`
	Notes       []string          `json:"notes"`
}

// Describe handles GET /api/v1/calculate
// Returns a self-describing document for the calculation endpoint.
//
// @Summary Describe the calculation API
// @Description Returns request schema, an example, and usage notes
// @Tags calculate
// @Produce json
// @Success 200 {object} apiDescription
// @Router /api/v1/calculate [get]
func (h *CalculateHandler) Describe(c *gin.Context) {
	c.JSON(http.StatusOK, apiDescription{
		Name:        "PRMF Premium Calculator API",
		Version:     "1.0.0",
		Endpoint:    "POST /api/v1/calculate",
		Description: "Calculate medical insurance premium based on age, benefit option, and family size",
		Request: map[string]string{
			"age":            "number (18-90)",
			"benefit_option": "string (option_1, option_2, option_3, option_4)",
			"family_size":    "string (M, M+1)",
		},
		Example: map[string]any{
			"age":            45,
			"benefit_option": "option_2",
			"family_size":    "M",
		},
		Notes: []string{
			"Ages 18-60 receive ANNUAL premium rates",
			"Ages 61-90 receive LUMPSUM (one-time) premium rates",
			"M = Principal member only",
			"M+1 = Principal member + Spouse",
		},
	})
}

// RegisterCalculateRoutes registers calculation routes on the given router group.
func (h *CalculateHandler) RegisterCalculateRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", h.Calculate)
	rg.GET("/calculate", h.Describe)
}
