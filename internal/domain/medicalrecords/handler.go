package medicalrecords

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
	r.Route("/pets/{petID}/medical-records", func(mr chi.Router) {
		mr.Post("/", createRecordHandler(svc, petOwners))
		mr.Get("/", listRecordsHandler(svc, petOwners))
	})

	r.Route("/medical-records/{recordID}", func(mr chi.Router) {
		mr.Get("/", getRecordHandler(svc, petOwners))
		mr.Delete("/", deleteRecordHandler(svc, petOwners))
	})
}

// createRecordRequest es el cuerpo para registrar una visita veterinaria.
type createRecordRequest struct {
	VisitDate       string `json:"visit_date" validate:"required,datetime=2006-01-02"`
	NextAppointment string `json:"next_appointment" validate:"omitempty,datetime=2006-01-02"`
	RecordType      string `json:"record_type" enums:"checkup,vaccination,deworming,surgery,dental,emergency,lab,other"`
	Diagnosis       string `json:"diagnosis"`
	Treatment       string `json:"treatment"`
	Veterinarian    string `json:"veterinarian"`
	Notes           string `json:"notes"`
}

type recordResponse struct {
	ID              string           `json:"id"`
	PetID           string           `json:"pet_id"`
	VisitDate       datewindow.Date  `json:"visit_date"`
	NextAppointment *datewindow.Date `json:"next_appointment,omitempty"`
	RecordType      RecordType       `json:"record_type"`
	Diagnosis       string           `json:"diagnosis"`
	Treatment       string           `json:"treatment"`
	Veterinarian    string           `json:"veterinarian"`
	Notes           string           `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// createRecordHandler godoc
// @Summary Registrar historia clínica
// @Description Registra una visita veterinaria. record_type por defecto `checkup`.
// @Tags medical-records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createRecordRequest true "Fechas en formato YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "validation failed"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/medical-records [post]
func createRecordHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !authorizePet(w, r, petOwners, petID) {
			return
		}

		var req createRecordRequest
		if err := httpjson.Decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		visit, _ := datewindow.ParseDate(req.VisitDate)
		next, _ := datewindow.ParseOptionalDate(req.NextAppointment)

		rec, err := svc.Create(r.Context(), petID, CreateInput{
			VisitDate:       visit,
			NextAppointment: next,
			RecordType:      RecordType(req.RecordType),
			Diagnosis:       req.Diagnosis,
			Treatment:       req.Treatment,
			Veterinarian:    req.Veterinarian,
			Notes:           req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar historia clínica de una mascota
// @Description Ordenado por visit_date descendente. Permite filtrar por tipos, rango de fechas y texto.
// @Tags medical-records
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: checkup,vaccination)"
// @Param from query string false "visit_date mínima (YYYY-MM-DD)"
// @Param to query string false "visit_date máxima (YYYY-MM-DD)"
// @Param q query string false "Texto libre en diagnóstico/tratamiento/veterinario/notas"
// @Success 200 {array} recordResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/medical-records [get]
func listRecordsHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if !authorizePet(w, r, petOwners, petID) {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.PetIDs = []string{petID}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadOwnedRecord(w, r, svc, petOwners)
		if !ok {
			return
		}
		httpjson.Write(w, http.StatusOK, toRecordResponse(rec))
	}
}

// deleteRecordHandler godoc
// @Summary Borrar registro de historia clínica
// @Tags medical-records
// @Param recordID path string true "ID del registro"
// @Success 204
// @Failure 404 {string} string "medical record not found"
// @Router /medical-records/{recordID} [delete]
func deleteRecordHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadOwnedRecord(w, r, svc, petOwners)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), rec.ID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// types=checkup,vaccination
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]RecordType, 0, len(parts))
		for _, p := range parts {
			t := normalizeType(RecordType(p))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown record type " + string(t))
			}
			out = append(out, t)
		}
		if len(out) > 0 {
			filter.Types = out
		}
	}

	from, err := datewindow.ParseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		return ListFilter{}, errors.New("from must be YYYY-MM-DD")
	}
	to, err := datewindow.ParseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		return ListFilter{}, errors.New("to must be YYYY-MM-DD")
	}
	filter.From, filter.To = from, to

	filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))

	return filter, nil
}

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

func loadOwnedRecord(w http.ResponseWriter, r *http.Request, svc *Service, petOwners PetOwnerLookup) (MedicalRecord, bool) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return MedicalRecord{}, false
	}
	rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		http.Error(w, "medical record not found", http.StatusNotFound)
		return MedicalRecord{}, false
	}
	if !authorizePet(w, r, petOwners, rec.PetID) {
		return MedicalRecord{}, false
	}
	return rec, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, validate.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medical record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRecordResponse(rec MedicalRecord) recordResponse {
	return recordResponse{
		ID:              rec.ID,
		PetID:           rec.PetID,
		VisitDate:       rec.VisitDate,
		NextAppointment: rec.NextAppointment,
		RecordType:      rec.RecordType,
		Diagnosis:       rec.Diagnosis,
		Treatment:       rec.Treatment,
		Veterinarian:    rec.Veterinarian,
		Notes:           rec.Notes,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}
