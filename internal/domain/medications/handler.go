package medications

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/middleware"
	"pet-record-guardian/internal/platform/httpjson"
	"pet-record-guardian/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// PetDirectory evita importar el paquete pets.
type PetDirectory interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
	PetIDsByOwner(ctx context.Context, ownerUserID string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, pets PetDirectory) {
	r.Route("/pets/{petID}/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc, pets))
		mr.Get("/", listMedicationsHandler(svc, pets))
	})

	r.Route("/medications/{medicationID}", func(mr chi.Router) {
		mr.Get("/", getMedicationHandler(svc, pets))
		mr.Patch("/", updateMedicationHandler(svc, pets))
		mr.Delete("/", deleteMedicationHandler(svc, pets))

		mr.Post("/logs", recordLogHandler(svc, pets))
		mr.Get("/logs", listLogsHandler(svc, pets))
		mr.Patch("/logs/{logID}", correctLogHandler(svc, pets))
	})

	// Reposiciones próximas de todas mis mascotas
	r.Get("/me/refills", listMyRefillsHandler(svc, pets))
}

type createMedicationRequest struct {
	Name       string `json:"name" validate:"required"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	RefillDate string `json:"refill_date" validate:"omitempty,datetime=2006-01-02"`
	Active     *bool  `json:"active"`
	Notes      string `json:"notes"`
}

type updateMedicationRequest struct {
	Name       *string `json:"name"`
	Dosage     *string `json:"dosage"`
	Frequency  *string `json:"frequency"`
	StartDate  *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	RefillDate *string `json:"refill_date" validate:"omitempty,datetime=2006-01-02"`
	Active     *bool   `json:"active"`
	Notes      *string `json:"notes"`
}

type medicationResponse struct {
	ID          string           `json:"id"`
	PetID       string           `json:"pet_id"`
	Name        string           `json:"name"`
	Dosage      string           `json:"dosage"`
	Frequency   string           `json:"frequency"`
	StartDate   datewindow.Date  `json:"start_date"`
	EndDate     *datewindow.Date `json:"end_date,omitempty"`
	RefillDate  *datewindow.Date `json:"refill_date,omitempty"`
	Active      bool             `json:"active"`
	Notes       string           `json:"notes"`
	IsDue       bool             `json:"is_due"`
	NeedsRefill bool             `json:"needs_refill"`
	StatusLabel StatusLabel      `json:"status_label"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type logRequest struct {
	GivenAt    string `json:"given_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	GivenBy    string `json:"given_by"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skip_reason"`
	Notes      string `json:"notes"`
}

type logCorrectionRequest struct {
	GivenAt    *string `json:"given_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	GivenBy    *string `json:"given_by"`
	Skipped    *bool   `json:"skipped"`
	SkipReason *string `json:"skip_reason"`
	Notes      *string `json:"notes"`
}

type logResponse struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medication_id"`
	GivenAt      time.Time `json:"given_at"`
	GivenBy      string    `json:"given_by,omitempty"`
	Skipped      bool      `json:"skipped"`
	SkipReason   string    `json:"skip_reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// createMedicationHandler godoc
// @Summary Registrar medicación
// @Tags medications
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createMedicationRequest true "Fechas YYYY-MM-DD; active por defecto true"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "validation failed"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/medications [post]
func createMedicationHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !authorizePet(w, r, pets, petID) {
			return
		}

		var req createMedicationRequest
		if err := httpjson.Decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		start, _ := datewindow.ParseDate(req.StartDate)
		end, _ := datewindow.ParseOptionalDate(req.EndDate)
		refill, _ := datewindow.ParseOptionalDate(req.RefillDate)

		m, err := svc.Create(r.Context(), petID, CreateInput{
			Name:       req.Name,
			Dosage:     req.Dosage,
			Frequency:  req.Frequency,
			StartDate:  start,
			EndDate:    end,
			RefillDate: refill,
			Active:     req.Active,
			Notes:      req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toMedicationResponse(svc.View(m)))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones de una mascota
// @Description Incluye is_due, needs_refill y status_label calculados al momento de la lectura.
// @Tags medications
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} medicationResponse
// @Router /pets/{petID}/medications [get]
func listMedicationsHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !authorizePet(w, r, pets, petID) {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(svc.View(m)))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getMedicationHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, pets)
		if !ok {
			return
		}
		httpjson.Write(w, http.StatusOK, toMedicationResponse(svc.View(m)))
	}
}

func updateMedicationHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedMedication(w, r, svc, pets)
		if !ok {
			return
		}

		var req updateMedicationRequest
		raw, err := httpjson.DecodePatch(r, &req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Active:    req.Active,
			Notes:     req.Notes,
		}
		if req.StartDate != nil {
			d, _ := datewindow.ParseDate(*req.StartDate)
			in.StartDate = &d
		}
		// end_date / refill_date aceptan null para limpiar
		if _, exists := raw["end_date"]; exists {
			in.EndDate.Present = true
			if req.EndDate != nil {
				in.EndDate.Value, _ = datewindow.ParseOptionalDate(*req.EndDate)
			}
		}
		if _, exists := raw["refill_date"]; exists {
			in.RefillDate.Present = true
			if req.RefillDate != nil {
				in.RefillDate.Value, _ = datewindow.ParseOptionalDate(*req.RefillDate)
			}
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toMedicationResponse(svc.View(updated)))
	}
}

func deleteMedicationHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, pets)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), m.ID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recordLogHandler godoc
// @Summary Registrar toma
// @Description Agrega una entrada al historial de tomas (given_at RFC3339, por defecto ahora). skipped=true registra una toma salteada.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID de la medicación"
// @Param payload body logRequest true "Datos de la toma"
// @Success 201 {object} logResponse
// @Router /medications/{medicationID}/logs [post]
func recordLogHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, pets)
		if !ok {
			return
		}

		var req logRequest
		if err := httpjson.Decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var givenAt time.Time
		if strings.TrimSpace(req.GivenAt) != "" {
			givenAt, _ = time.Parse(time.RFC3339, req.GivenAt)
		}

		l, err := svc.RecordLog(r.Context(), m.ID, LogInput{
			GivenAt:    givenAt,
			GivenBy:    req.GivenBy,
			Skipped:    req.Skipped,
			SkipReason: req.SkipReason,
			Notes:      req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toLogResponse(l))
	}
}

func listLogsHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, pets)
		if !ok {
			return
		}

		items, err := svc.ListLogs(r.Context(), m.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]logResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLogResponse(l))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func correctLogHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, pets)
		if !ok {
			return
		}

		var req logCorrectionRequest
		if err := httpjson.Decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := LogCorrection{
			GivenBy:    req.GivenBy,
			Skipped:    req.Skipped,
			SkipReason: req.SkipReason,
			Notes:      req.Notes,
		}
		if req.GivenAt != nil {
			t, _ := time.Parse(time.RFC3339, *req.GivenAt)
			in.GivenAt = &t
		}

		l, err := svc.CorrectLog(r.Context(), m.ID, chi.URLParam(r, "logID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toLogResponse(l))
	}
}

// listMyRefillsHandler godoc
// @Summary Reposiciones próximas
// @Description Medicaciones activas de todas mis mascotas con refill_date dentro de la ventana configurada, ordenadas por fecha.
// @Tags medications
// @Produce json
// @Success 200 {array} medicationResponse
// @Router /me/refills [get]
func listMyRefillsHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petIDs, err := pets.PetIDsByOwner(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items, err := svc.Refills(r.Context(), petIDs)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toMedicationResponse(v))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func authorizePet(w http.ResponseWriter, r *http.Request, pets PetDirectory, petID string) bool {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	ownerID, err := pets.OwnerOf(r.Context(), petID)
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

func loadOwnedMedication(w http.ResponseWriter, r *http.Request, svc *Service, pets PetDirectory) (Medication, bool) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Medication{}, false
	}
	m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
	if err != nil {
		http.Error(w, "medication not found", http.StatusNotFound)
		return Medication{}, false
	}
	if !authorizePet(w, r, pets, m.PetID) {
		return Medication{}, false
	}
	return m, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, validate.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	case errors.Is(err, ErrLogNotFound):
		http.Error(w, "medication log not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicationResponse(v View) medicationResponse {
	m := v.Medication
	return medicationResponse{
		ID:          m.ID,
		PetID:       m.PetID,
		Name:        m.Name,
		Dosage:      m.Dosage,
		Frequency:   m.Frequency,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		RefillDate:  m.RefillDate,
		Active:      m.Active,
		Notes:       m.Notes,
		IsDue:       v.IsDue,
		NeedsRefill: v.NeedsRefill,
		StatusLabel: v.Label,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toLogResponse(l Log) logResponse {
	return logResponse{
		ID:           l.ID,
		MedicationID: l.MedicationID,
		GivenAt:      l.GivenAt,
		GivenBy:      l.GivenBy,
		Skipped:      l.Skipped,
		SkipReason:   l.SkipReason,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
