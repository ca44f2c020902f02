// Package handlers provides Lambda handlers for the car cost engine.
package handlers

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"car-cost-engine/internal/models"
	"car-cost-engine/internal/services/calculator"
	"car-cost-engine/internal/utils"
)

// CalculateHandler handles calculation requests behind API Gateway. The
// Lambda path is engine-only: no database, no cache, a pure calculation per
// invocation.
type CalculateHandler struct {
	svc *calculator.Service
}

// NewCalculateHandler creates a new calculate handler.
func NewCalculateHandler() *CalculateHandler {
	return &CalculateHandler{
		svc: calculator.NewService(nil, nil, nil),
	}
}

// Handle processes a calculation request.
func (h *CalculateHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := map[string]string{
		"Access-Control-Allow-Origin": "*",
		"Content-Type":                "application/json",
	}

	var input models.CalculatorInput
	if err := json.Unmarshal([]byte(request.Body), &input); err != nil {
		utils.GetLogger().Warn("Invalid calculation request body", zap.Error(err))
		return errorResponse(headers, 400, "invalid request body"), nil
	}

	breakdown, err := h.svc.Calculate(ctx, request.QueryStringParameters["profile_key"], input)
	if err != nil {
		utils.GetLogger().Error("Calculation failed", zap.Error(err))
		return errorResponse(headers, 500, "calculation failed"), nil
	}

	body, err := json.Marshal(breakdown)
	if err != nil {
		return errorResponse(headers, 500, "failed to encode response"), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// errorResponse builds a JSON error response.
func errorResponse(headers map[string]string, status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}
