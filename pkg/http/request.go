package http

import (
	"net/http"
	"strconv"

	apperrors "shareit/pkg/errors"
)

// UserIDHeader carries the caller's identity on every request.
const UserIDHeader = "X-Sharer-User-Id"

func ExtractUserID(r *http.Request) (string, error) {
	id := r.Header.Get(UserIDHeader)
	if id == "" {
		return "", apperrors.InvalidInput("missing " + UserIDHeader + " header")
	}
	return id, nil
}

// ExtractPage parses the optional (from, size) pagination pair. Absent
// parameters come back nil; the service layer decides whether a partial pair
// is acceptable.
func ExtractPage(r *http.Request) (from, size *int, err error) {
	query := r.URL.Query()

	if s := query.Get("from"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return nil, nil, apperrors.InvalidInput("invalid from parameter: " + s)
		}
		from = &v
	}

	if s := query.Get("size"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return nil, nil, apperrors.InvalidInput("invalid size parameter: " + s)
		}
		size = &v
	}

	return from, size, nil
}
