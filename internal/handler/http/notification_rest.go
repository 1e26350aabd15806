package httphandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"notification-service/internal/domain"
	"notification-service/internal/middleware"
	"notification-service/internal/usecase"
	"notification-service/pkg/response"
	"notification-service/pkg/xerrors"
)

type NotificationHandler struct {
	uc       *usecase.NotificationUsecase
	schema   *domain.PreferenceSchema
	validate *validator.Validate
}

func NewNotificationHandler(uc *usecase.NotificationUsecase, schema *domain.PreferenceSchema) *NotificationHandler {
	return &NotificationHandler{
		uc:       uc,
		schema:   schema,
		validate: validator.New(),
	}
}

func queryFromContext(r *http.Request) usecase.ListQuery {
	ctx := r.Context()
	return usecase.ListQuery{
		TenantID:   middleware.TenantID(ctx),
		MemberID:   middleware.MemberID(ctx),
		CustomerID: middleware.CustomerID(ctx),
	}
}

func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, "notification not found")
	default:
		log.Printf("⚠️ [HTTP] request=%s %s %s failed: %v",
			middleware.GetRequestID(r.Context()), r.Method, r.URL.Path, err)
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// ----------------------
// Notification Handlers
// ----------------------

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	q := queryFromContext(r)
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	q.UnreadOnly = r.URL.Query().Get("unread") == "true"

	result, err := h.uc.List(r.Context(), q)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *NotificationHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	count, err := h.uc.CountUnread(r.Context(), queryFromContext(r))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.uc.MarkRead(r.Context(), id, queryFromContext(r)); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.MarkAllRead(r.Context(), queryFromContext(r)); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------
// Preference Handlers
// ----------------------

func recipientFromContext(r *http.Request) domain.Recipient {
	if memberID := middleware.MemberID(r.Context()); memberID != "" {
		return domain.MemberRecipient(memberID)
	}
	return domain.CustomerRecipient(middleware.CustomerID(r.Context()))
}

func (h *NotificationHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs := h.uc.GetPreferences(r.Context(), middleware.TenantID(r.Context()), recipientFromContext(r))
	response.JSON(w, http.StatusOK, prefs)
}

type updatePreferencesRequest struct {
	Preferences map[string]bool `json:"preferences" validate:"required,min=1"`
}

func (h *NotificationHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req updatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "preferences payload is empty")
		return
	}

	partial := make(map[domain.NotificationType]bool, len(req.Preferences))
	for key, enabled := range req.Preferences {
		t := domain.NotificationType(key)
		if !h.schema.HasPreference(t) {
			response.Error(w, http.StatusBadRequest, "unknown notification type: "+key)
			return
		}
		partial[t] = enabled
	}

	ok := h.uc.UpdatePreferences(r.Context(), middleware.TenantID(r.Context()), partial, recipientFromContext(r))
	if !ok {
		response.Error(w, http.StatusBadRequest, "could not update preferences")
		return
	}
	prefs := h.uc.GetPreferences(r.Context(), middleware.TenantID(r.Context()), recipientFromContext(r))
	response.JSON(w, http.StatusOK, prefs)
}
