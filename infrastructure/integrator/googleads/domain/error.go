package adsdomain

import (
	"fmt"
	"net/http"
)

// ErrorResponse representa o envelope de erro da API REST do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsTokenExpired verifica se o erro pede um novo access token
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == http.StatusUnauthorized || e.Error.Status == "UNAUTHENTICATED"
}

// APIError é o erro devolvido pelo cliente para respostas não-2xx
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google ads: status %d %s: %s", e.HTTPStatus, e.Status, e.Message)
}

// IsTransient indica erros que podem ser repetidos no próximo ciclo
func (e *APIError) IsTransient() bool {
	switch e.Status {
	case "RESOURCE_EXHAUSTED", "UNAVAILABLE", "DEADLINE_EXCEEDED":
		return true
	}
	return e.HTTPStatus == http.StatusTooManyRequests || e.HTTPStatus >= http.StatusInternalServerError
}
