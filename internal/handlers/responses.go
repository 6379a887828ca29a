// Package handlers provides Lambda request handlers for the Connectly Calendly bridge.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// jsonResponse marshals a body into an API Gateway response.
func jsonResponse(headers map[string]string, statusCode int, body interface{}) (events.APIGatewayProxyResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       `{"error":"Internal server error"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(payload),
	}, nil
}

// errorResponse creates an error response.
func errorResponse(headers map[string]string, statusCode int, message string) (events.APIGatewayProxyResponse, error) {
	return jsonResponse(headers, statusCode, map[string]string{"error": message})
}

// defaultHeaders returns the CORS and content-type headers shared by all
// handlers.
func defaultHeaders(allowedMethods string) map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization,Calendly-Webhook-Signature",
		"Access-Control-Allow-Methods": allowedMethods,
		"Content-Type":                 "application/json",
	}
}
