package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/platea/sector-monitor/internal/alerts"
	"github.com/platea/sector-monitor/internal/repository"
	"github.com/platea/sector-monitor/internal/repository/sqlite"
)

const historyLimit = 20

type handler struct {
	log       *slog.Logger
	registrar Registrar
	repo      sqlite.Interface
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type phoneResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":            "healthy",
		"sms_configured":    h.registrar.IsConfigured(),
		"registered_phones": h.registrar.ActiveRecipientCount(r.Context()),
	})
}

func (h *handler) metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	phones, err := h.repo.CountActiveRecipients(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	smsSent, err := h.repo.CountSuccessfulDeliveries(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	changes, err := h.repo.CountChanges(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	snapshots, err := h.repo.CountSnapshots(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"active_phones":          phones,
		"total_sms_sent":         smsSent,
		"total_changes_detected": changes,
		"total_snapshots":        snapshots,
		"sms_service_configured": h.registrar.IsConfigured(),
	})
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.ListEvents(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	type eventStatus struct {
		ID          string     `json:"id"`
		URL         string     `json:"url"`
		Name        string     `json:"name"`
		LastChecked *time.Time `json:"last_checked,omitempty"`
	}

	statuses := make([]eventStatus, 0, len(events))
	for _, event := range events {
		st := eventStatus{ID: event.ID, URL: event.URL, Name: event.Name}
		if !event.LastChecked.IsZero() {
			checked := event.LastChecked
			st.LastChecked = &checked
		}
		statuses = append(statuses, st)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"events":         statuses,
		"sms_configured": h.registrar.IsConfigured(),
	})
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	changes, err := h.repo.RecentChanges(ctx, historyLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	deliveries, err := h.repo.RecentDeliveries(ctx, historyLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	type changeEntry struct {
		EventID    string    `json:"event_id"`
		NewSectors []string  `json:"new_sectors"`
		Timestamp  time.Time `json:"timestamp"`
		SMSSent    bool      `json:"sms_sent"`
	}
	type deliveryEntry struct {
		Phone     string    `json:"phone"`
		Timestamp time.Time `json:"timestamp"`
		Success   bool      `json:"success"`
		Error     string    `json:"error,omitempty"`
	}

	changeEntries := make([]changeEntry, 0, len(changes))
	for _, c := range changes {
		changeEntries = append(changeEntries, changeEntry(c))
	}
	deliveryEntries := make([]deliveryEntry, 0, len(deliveries))
	for _, d := range deliveries {
		deliveryEntries = append(deliveryEntries, deliveryEntry{
			Phone:     d.Phone,
			Timestamp: d.Timestamp,
			Success:   d.Success,
			Error:     d.ErrorText,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"changes":    changeEntries,
		"deliveries": deliveryEntries,
	})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	phone, ok := decodePhone(w, r)
	if !ok {
		return
	}

	normalized, err := h.registrar.RegisterPhone(r.Context(), phone)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, phoneResponse{
			Success: true,
			Message: "Phone number registered successfully",
			Phone:   normalized,
		})
	case errors.Is(err, alerts.ErrInvalidPhone):
		respondJSON(w, http.StatusBadRequest, phoneResponse{Success: false, Error: err.Error()})
	case errors.Is(err, alerts.ErrAlreadyRegistered):
		respondJSON(w, http.StatusConflict, phoneResponse{Success: false, Error: err.Error()})
	default:
		h.log.ErrorContext(r.Context(), "Failed to register phone", "error", err)
		respondJSON(w, http.StatusInternalServerError, phoneResponse{Success: false, Error: "Database error occurred"})
	}
}

func (h *handler) unregister(w http.ResponseWriter, r *http.Request) {
	phone, ok := decodePhone(w, r)
	if !ok {
		return
	}

	_, err := h.registrar.UnregisterPhone(r.Context(), phone)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, phoneResponse{
			Success: true,
			Message: "Phone number unregistered successfully",
		})
	case errors.Is(err, alerts.ErrInvalidPhone):
		respondJSON(w, http.StatusBadRequest, phoneResponse{Success: false, Error: err.Error()})
	case errors.Is(err, repository.ErrRecipientNotFound):
		respondJSON(w, http.StatusNotFound, phoneResponse{Success: false, Error: "Phone number not found"})
	default:
		h.log.ErrorContext(r.Context(), "Failed to unregister phone", "error", err)
		respondJSON(w, http.StatusInternalServerError, phoneResponse{Success: false, Error: "Database error occurred"})
	}
}

func (h *handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// decodePhone reads the {"phone": "..."} request body. On a malformed
// body it writes the 400 itself and returns ok=false.
func decodePhone(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req phoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		respondJSON(w, http.StatusBadRequest, phoneResponse{Success: false, Error: "missing phone"})
		return "", false
	}

	return req.Phone, true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
