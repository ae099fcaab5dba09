package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/thiagobazzo/formulario-inscricao/document"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

type registrationRequest struct {
	FullName         string          `json:"full_name"`
	Age              json.RawMessage `json:"age"`
	Phone            string          `json:"phone"`
	IdentityDocument string          `json:"identity_document"`
	GuardianName     string          `json:"guardian_name"`
	GuardianDocument string          `json:"guardian_document"`
}

type Registration struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"full_name"`
	Age              int       `json:"age"`
	Phone            string    `json:"phone"`
	IdentityDocument string    `json:"identity_document"`
	IsMinor          bool      `json:"is_minor"`
	GuardianName     *string   `json:"guardian_name"`
	GuardianDocument *string   `json:"guardian_document"`
	RegisteredAt     time.Time `json:"registered_at"`
	Status           string    `json:"status"`
}

type registerResponse struct {
	Registration Registration `json:"registration"`
	ReceiptURL   string       `json:"receipt_url"`
}

type listResponse struct {
	Data []Registration `json:"data"`
}

type statisticsResponse struct {
	Total  int `json:"total"`
	Minors int `json:"minors"`
	Adults int `json:"adults"`
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.WarnContext(r.Context(), "Invalid body for registration", "error", err)
		writeError(w, http.StatusBadRequest, InvalidBody, "Invalid body")
		return
	}

	reg, err := registration.Register(r.Context(), registration.Input{
		FullName:         req.FullName,
		Age:              rawToString(req.Age),
		Phone:            req.Phone,
		IdentityDocument: req.IdentityDocument,
		GuardianName:     req.GuardianName,
		GuardianDocument: req.GuardianDocument,
	}, a.db)
	if err != nil {
		a.writeRegisterError(w, r, err)
		return
	}

	a.metrics.registrationsAccepted.Inc()
	writeJSON(w, http.StatusCreated, registerResponse{
		Registration: registrationToAPI(reg),
		ReceiptURL:   fmt.Sprintf("/receipt/%d", reg.ID),
	})
}

func (a *API) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	var regErr *registration.Error
	if errors.As(err, &regErr) {
		switch {
		case regErr.Reason.IsValidation():
			a.logger.WarnContext(r.Context(), "Registration rejected", "reason", string(regErr.Reason))
			a.metrics.registrationsRejected.Inc()
			writeError(w, http.StatusBadRequest, ValidationFailed, regErr.Message)
			return
		case regErr.Reason == registration.REASON_REGISTRATION_ALREADY_EXISTS:
			a.logger.WarnContext(r.Context(), "Duplicate identity on registration", "error", err)
			a.metrics.registrationsDuplicate.Inc()
			writeError(w, http.StatusConflict, AlreadyExists, "This identity document is already registered")
			return
		}
	}

	a.logger.ErrorContext(r.Context(), "Error trying to register", "error", err)
	writeError(w, http.StatusInternalServerError, InternalError, "Failed to register")
}

func (a *API) listRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := a.db.GetAllRegistrations(r.Context())
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to list registrations", "error", err)
		writeError(w, http.StatusInternalServerError, InternalError, "Failed to list registrations")
		return
	}

	resp := listResponse{Data: []Registration{}}
	for _, reg := range regs {
		resp.Data = append(resp.Data, registrationToAPI(reg))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := a.db.CountRegistrations(r.Context())
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to count registrations", "error", err)
		writeError(w, http.StatusInternalServerError, InternalError, "Failed to get statistics")
		return
	}

	writeJSON(w, http.StatusOK, statisticsResponse{
		Total:  stats.Total,
		Minors: stats.Minors,
		Adults: stats.Adults,
	})
}

func (a *API) receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, NotFound, "Registration not found")
		return
	}

	reg, err := a.db.GetRegistration(r.Context(), id)
	if err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) && regErr.Reason == registration.REASON_REGISTRATION_DOES_NOT_EXIST {
			writeError(w, http.StatusNotFound, NotFound, "Registration not found")
			return
		}
		a.logger.ErrorContext(r.Context(), "Failed to fetch registration for receipt", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, InternalError, "Failed to render receipt")
		return
	}

	pdf, err := document.Receipt(reg)
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to render receipt", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, InternalError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%d.pdf", reg.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (a *API) export(w http.ResponseWriter, r *http.Request) {
	regs, err := a.db.GetAllRegistrations(r.Context())
	if err != nil {
		a.logger.ErrorContext(r.Context(), "Failed to list registrations for export", "error", err)
		writeError(w, http.StatusInternalServerError, InternalError, "Failed to render export")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(document.Export(regs))
}

func registrationToAPI(reg registration.Registration) Registration {
	return Registration{
		ID:               reg.ID,
		FullName:         reg.FullName,
		Age:              reg.Age,
		Phone:            reg.Phone,
		IdentityDocument: reg.Document,
		IsMinor:          reg.IsMinor,
		GuardianName:     reg.GuardianName,
		GuardianDocument: reg.GuardianDocument,
		RegisteredAt:     reg.RegisteredAt,
		Status:           reg.Status,
	}
}

// rawToString tolerates a field arriving as either a JSON number or a
// quoted string; the validator owns the actual parsing rules.
func rawToString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}
