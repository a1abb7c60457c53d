// Package services holds the registrar business operations. Each service is an
// interface with an unexported implementation wired in bootstrap.
package services

import (
	"strings"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// requireID rejects a blank identifier query parameter.
func requireID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.NewValidationError(field, field+" is required")
	}
	return id, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
