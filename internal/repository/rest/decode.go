// Package rest implements the domain repositories against the CareerBridge
// REST API. Every method performs exactly one HTTP request.
package rest

import (
	"encoding/json"
	"fmt"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/httpclient"
	"net/http"
)

// decodePage reads a list envelope: data holds the items, pagination the
// metadata. A missing pagination block leaves the zero value.
func decodePage[T any](env *httpclient.Envelope) (*domain.Page[T], error) {
	items, err := httpclient.Decode[[]T](env)
	if err != nil {
		return nil, err
	}
	page := &domain.Page[T]{Items: items}
	if raw := env.Pagination; len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &page.Pagination); err != nil {
			return nil, apperror.New(http.StatusOK, "", fmt.Errorf("rest: decode pagination: %w", err))
		}
	}
	return page, nil
}

// decodeOne reads a single document and insists that it is present.
func decodeOne[T any](env *httpclient.Envelope, what string) (*T, error) {
	v, err := httpclient.Decode[*T](env)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperror.New(http.StatusOK, "", fmt.Errorf("rest: response carried no %s", what))
	}
	return v, nil
}
