package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	activityerrors "backstage/contexts/audit-trail/activity-log-service/domain/errors"
	activityhttp "backstage/contexts/audit-trail/activity-log-service/transport/http"
)

func writeActivityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, activityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeActivityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activityerrors.ErrInvalidQuery),
		errors.Is(err, activityerrors.ErrInvalidLogEntry):
		writeActivityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeActivityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListActivityLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeActivityError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.activity.Handler.ListLogsHandler(
		r.Context(),
		query.Get("entityType"),
		query.Get("entityId"),
		limit,
	)
	if err != nil {
		writeActivityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
