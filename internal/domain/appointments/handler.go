package appointments

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/middleware"
	"pet-record-guardian/internal/platform/httpjson"
	"pet-record-guardian/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// PetOwnerLookup evita importar el paquete pets.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petOwners PetOwnerLookup) {
	r.Route("/pets/{petID}/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc, petOwners))
		ar.Get("/", listAppointmentsHandler(svc, petOwners))
	})

	// Sugerencia de fin de recurrencia para pre-cargar el formulario (no persiste).
	r.Get("/appointments/recurrence-end", recurrenceEndHandler())

	r.Route("/appointments/{appointmentID}", func(ar chi.Router) {
		ar.Get("/", getAppointmentHandler(svc, petOwners))
		ar.Patch("/", updateAppointmentHandler(svc, petOwners))
		ar.Delete("/", deleteAppointmentHandler(svc, petOwners))
		ar.Get("/occurrences", occurrencesHandler(svc, petOwners))
	})
}

// createAppointmentRequest es el cuerpo para agendar una cita.
type createAppointmentRequest struct {
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	Time              string `json:"time"`
	Reason            string `json:"reason"`
	Notes             string `json:"notes"`
	Status            string `json:"status" validate:"omitempty,oneof=scheduled completed canceled missed"`
	IsRecurring       bool   `json:"is_recurring"`
	RecurrencePattern string `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceEndDate string `json:"recurrence_end_date" validate:"omitempty,datetime=2006-01-02"`
}

type updateAppointmentRequest struct {
	Date              *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time              *string `json:"time"`
	Reason            *string `json:"reason"`
	Notes             *string `json:"notes"`
	Status            *string `json:"status" validate:"omitempty,oneof=scheduled completed canceled missed"`
	IsRecurring       *bool   `json:"is_recurring"`
	RecurrencePattern *string `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly monthly yearly"`
	RecurrenceEndDate *string `json:"recurrence_end_date" validate:"omitempty,datetime=2006-01-02"`
}

// appointmentResponse incluye display_status derivado en el momento de la lectura.
type appointmentResponse struct {
	ID                string            `json:"id"`
	PetID             string            `json:"pet_id"`
	Date              datewindow.Date   `json:"date"`
	Time              string            `json:"time,omitempty"`
	Reason            string            `json:"reason"`
	Notes             string            `json:"notes"`
	Status            Status            `json:"status"`
	DisplayStatus     DisplayStatus     `json:"display_status"`
	IsRecurring       bool              `json:"is_recurring"`
	RecurrencePattern RecurrencePattern `json:"recurrence_pattern,omitempty"`
	RecurrenceEndDate *datewindow.Date  `json:"recurrence_end_date,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type occurrencesResponse struct {
	AppointmentID string            `json:"appointment_id"`
	Pattern       RecurrencePattern `json:"recurrence_pattern,omitempty"`
	Dates         []datewindow.Date `json:"dates"`
}

type recurrenceEndResponse struct {
	Start      datewindow.Date   `json:"start"`
	Pattern    RecurrencePattern `json:"recurrence_pattern"`
	SuggestEnd *datewindow.Date  `json:"suggested_end"`
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Description Crea una cita para la mascota. Si es recurrente se guarda UNA fila con patrón y fecha de fin; no se generan ocurrencias.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createAppointmentRequest true "Datos de la cita; fechas YYYY-MM-DD"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / validation failed"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/appointments [post]
func createAppointmentHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !authorizePet(w, r, petOwners, petID) {
			return
		}

		var req createAppointmentRequest
		if err := httpjson.Decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		date, err := datewindow.ParseDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := datewindow.ParseOptionalDate(req.RecurrenceEndDate)
		if err != nil {
			http.Error(w, "recurrence_end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), petID, CreateInput{
			Date:              date,
			Time:              req.Time,
			Reason:            req.Reason,
			Notes:             req.Notes,
			Status:            Status(req.Status),
			IsRecurring:       req.IsRecurring,
			RecurrencePattern: RecurrencePattern(req.RecurrencePattern),
			RecurrenceEndDate: end,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, toAppointmentResponse(a, svc.DisplayStatus(a)))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas de una mascota
// @Tags appointments
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param from query string false "Fecha mínima (YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD)"
// @Success 200 {array} appointmentResponse
// @Failure 400 {string} string "from/to inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/appointments [get]
func listAppointmentsHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !authorizePet(w, r, petOwners, petID) {
			return
		}

		from, to, err := parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), ListFilter{PetIDs: []string{petID}, From: from, To: to})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a, svc.DisplayStatus(a)))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := loadOwnedAppointment(w, r, svc, petOwners)
		if !ok {
			return
		}
		httpjson.Write(w, http.StatusOK, toAppointmentResponse(a, svc.DisplayStatus(a)))
	}
}

// updateAppointmentHandler godoc
// @Summary Editar cita
// @Description PATCH parcial. `recurrence_end_date: null` limpia la fecha de fin. El estado solo cambia por acción explícita del usuario.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body updateAppointmentRequest true "Campos a modificar"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / validation failed"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID} [patch]
func updateAppointmentHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedAppointment(w, r, svc, petOwners)
		if !ok {
			return
		}

		var req updateAppointmentRequest
		raw, err := httpjson.DecodePatch(r, &req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Time:        req.Time,
			Reason:      req.Reason,
			Notes:       req.Notes,
			IsRecurring: req.IsRecurring,
		}
		if req.Date != nil {
			d, err := datewindow.ParseDate(*req.Date)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &d
		}
		if req.Status != nil {
			st := Status(*req.Status)
			in.Status = &st
		}
		if req.RecurrencePattern != nil {
			p := RecurrencePattern(*req.RecurrencePattern)
			in.RecurrencePattern = &p
		}
		if v, exists := raw["recurrence_end_date"]; exists {
			in.RecurrenceEndDate.Present = true
			if string(v) != "null" && req.RecurrenceEndDate != nil {
				end, err := datewindow.ParseOptionalDate(*req.RecurrenceEndDate)
				if err != nil {
					http.Error(w, "recurrence_end_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.RecurrenceEndDate.Value = end
			}
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAppointmentResponse(updated, svc.DisplayStatus(updated)))
	}
}

func deleteAppointmentHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := loadOwnedAppointment(w, r, svc, petOwners)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), a.ID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// occurrencesHandler godoc
// @Summary Previsualizar ocurrencias
// @Description Expande (solo lectura) las fechas de una cita recurrente dentro de [from, to], acotado por limit. No crea filas.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param from query string false "YYYY-MM-DD; por defecto hoy"
// @Param to query string false "YYYY-MM-DD"
// @Param limit query int false "Máximo de fechas (1-366). Por defecto 52"
// @Success 200 {object} occurrencesResponse
// @Router /appointments/{appointmentID}/occurrences [get]
func occurrencesHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := loadOwnedAppointment(w, r, svc, petOwners)
		if !ok {
			return
		}

		from, to, err := parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fromDate := svc.clock.Today()
		if from != nil {
			fromDate = *from
		}
		var toDate datewindow.Date
		if to != nil {
			toDate = *to
		}

		limit := DefaultOccurrenceLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 366 {
				limit = n
			}
		}

		httpjson.Write(w, http.StatusOK, occurrencesResponse{
			AppointmentID: a.ID,
			Pattern:       a.RecurrencePattern,
			Dates:         Occurrences(a, fromDate, toDate, limit),
		})
	}
}

// recurrenceEndHandler godoc
// @Summary Sugerir fin de recurrencia
// @Description daily +14 días, weekly +12 semanas, monthly +6 meses, yearly +2 años. Si current_end es válido (no anterior a start) se devuelve tal cual.
// @Tags appointments
// @Produce json
// @Param start query string true "YYYY-MM-DD"
// @Param pattern query string true "daily|weekly|monthly|yearly"
// @Param current_end query string false "YYYY-MM-DD"
// @Success 200 {object} recurrenceEndResponse
// @Failure 400 {string} string "start/pattern inválidos"
// @Router /appointments/recurrence-end [get]
func recurrenceEndHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start, err := datewindow.ParseDate(q.Get("start"))
		if err != nil {
			http.Error(w, "start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		pattern := RecurrencePattern(strings.ToLower(strings.TrimSpace(q.Get("pattern"))))
		if !pattern.Valid() {
			http.Error(w, "pattern must be one of daily, weekly, monthly, yearly", http.StatusBadRequest)
			return
		}
		current, err := datewindow.ParseOptionalDate(q.Get("current_end"))
		if err != nil {
			http.Error(w, "current_end must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		httpjson.Write(w, http.StatusOK, recurrenceEndResponse{
			Start:      start,
			Pattern:    pattern,
			SuggestEnd: ResolveRecurrenceEnd(start, pattern, current),
		})
	}
}

// authorizePet: solo el dueño opera sobre las citas de su mascota.
func authorizePet(w http.ResponseWriter, r *http.Request, petOwners PetOwnerLookup, petID string) bool {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	ownerID, err := petOwners.OwnerOf(r.Context(), petID)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		http.Error(w, "pet not found", http.StatusNotFound)
		return false
	}
	if ownerID != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func loadOwnedAppointment(w http.ResponseWriter, r *http.Request, svc *Service, petOwners PetOwnerLookup) (Appointment, bool) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Appointment{}, false
	}
	a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return Appointment{}, false
	}
	if !authorizePet(w, r, petOwners, a.PetID) {
		return Appointment{}, false
	}
	return a, true
}

func parseRange(r *http.Request) (*datewindow.Date, *datewindow.Date, error) {
	from, err := datewindow.ParseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		return nil, nil, errors.New("from must be YYYY-MM-DD")
	}
	to, err := datewindow.ParseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		return nil, nil, errors.New("to must be YYYY-MM-DD")
	}
	return from, to, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, validate.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(a Appointment, display DisplayStatus) appointmentResponse {
	return appointmentResponse{
		ID:                a.ID,
		PetID:             a.PetID,
		Date:              a.Date,
		Time:              a.Time,
		Reason:            a.Reason,
		Notes:             a.Notes,
		Status:            a.Status,
		DisplayStatus:     display,
		IsRecurring:       a.IsRecurring,
		RecurrencePattern: a.RecurrencePattern,
		RecurrenceEndDate: a.RecurrenceEndDate,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
