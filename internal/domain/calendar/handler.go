package calendar

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
	"pet-record-guardian/internal/middleware"
	"pet-record-guardian/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

// PetDirectory evita importar el paquete pets.
type PetDirectory interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
	PetIDsByOwner(ctx context.Context, ownerUserID string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, pets PetDirectory) {
	r.Route("/calendar", func(cr chi.Router) {
		cr.Get("/", monthHandler(svc, pets))
		cr.Get("/{date}", dayHandler(svc, pets))
	})
}

type calendarAppointment struct {
	ID            string                     `json:"id"`
	PetID         string                     `json:"pet_id"`
	Date          datewindow.Date            `json:"date"`
	Time          string                     `json:"time,omitempty"`
	Reason        string                     `json:"reason"`
	Status        appointments.Status        `json:"status"`
	DisplayStatus appointments.DisplayStatus `json:"display_status"`
	IsRecurring   bool                       `json:"is_recurring"`
}

type calendarRecord struct {
	ID              string                    `json:"id"`
	PetID           string                    `json:"pet_id"`
	VisitDate       datewindow.Date           `json:"visit_date"`
	NextAppointment *datewindow.Date          `json:"next_appointment,omitempty"`
	RecordType      medicalrecords.RecordType `json:"record_type"`
	Diagnosis       string                    `json:"diagnosis"`
	Veterinarian    string                    `json:"veterinarian"`
}

type dayResponse struct {
	Date           string                `json:"date"`
	Appointments   []calendarAppointment `json:"appointments"`
	MedicalRecords []calendarRecord      `json:"medical_records"`
}

type monthResponse struct {
	Month string        `json:"month"`
	From  string        `json:"from"`
	To    string        `json:"to"`
	Days  []dayResponse `json:"days"`
}

// monthHandler godoc
// @Summary Calendario mensual
// @Description Agrupa citas (por date) e historias clínicas (por visit_date) en días. Solo aparecen días con eventos.
// @Tags calendar
// @Produce json
// @Param month query string false "Mes en formato YYYY-MM (por defecto el actual)"
// @Param pet_id query string false "Limitar a una mascota"
// @Success 200 {object} monthResponse
// @Failure 400 {string} string "month must be YYYY-MM"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /calendar [get]
func monthHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petIDs, ok := resolvePets(w, r, pets)
		if !ok {
			return
		}

		var year int
		var month time.Month
		if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
			t, err := time.Parse("2006-01", v)
			if err != nil {
				http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
				return
			}
			year, month = t.Year(), t.Month()
		}

		view, err := svc.Month(r.Context(), petIDs, year, month)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := svc.Now()
		out := monthResponse{
			Month: view.From.Time().Format("2006-01"),
			From:  view.From.String(),
			To:    view.To.String(),
			Days:  make([]dayResponse, 0, len(view.Days)),
		}
		for _, key := range Days(view.Days) {
			out.Days = append(out.Days, toDayResponse(view.Days[key], now))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// dayHandler godoc
// @Summary Eventos de un día
// @Tags calendar
// @Produce json
// @Param date path string true "Día en formato YYYY-MM-DD"
// @Param pet_id query string false "Limitar a una mascota"
// @Success 200 {object} dayResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 404 {string} string "no events on this day"
// @Router /calendar/{date} [get]
func dayHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := datewindow.ParseDate(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		petIDs, ok := resolvePets(w, r, pets)
		if !ok {
			return
		}

		b, found, err := svc.Day(r.Context(), petIDs, d)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "no events on this day", http.StatusNotFound)
			return
		}
		httpjson.Write(w, http.StatusOK, toDayResponse(b, svc.Now()))
	}
}

// resolvePets devuelve pet_id (si es mío) o todas mis mascotas.
func resolvePets(w http.ResponseWriter, r *http.Request, pets PetDirectory) ([]string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	if petID := strings.TrimSpace(r.URL.Query().Get("pet_id")); petID != "" {
		ownerID, err := pets.OwnerOf(r.Context(), petID)
		if err != nil || strings.TrimSpace(ownerID) == "" {
			http.Error(w, "pet not found", http.StatusNotFound)
			return nil, false
		}
		if ownerID != userID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return nil, false
		}
		return []string{petID}, true
	}

	ids, err := pets.PetIDsByOwner(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return ids, true
}

func toDayResponse(b DayBucket, now time.Time) dayResponse {
	out := dayResponse{
		Date:           b.Date.String(),
		Appointments:   make([]calendarAppointment, 0, len(b.Appointments)),
		MedicalRecords: make([]calendarRecord, 0, len(b.MedicalRecords)),
	}
	for _, a := range b.Appointments {
		out.Appointments = append(out.Appointments, calendarAppointment{
			ID:            a.ID,
			PetID:         a.PetID,
			Date:          a.Date,
			Time:          a.Time,
			Reason:        a.Reason,
			Status:        a.Status,
			DisplayStatus: appointments.Classify(a, now),
			IsRecurring:   a.IsRecurring,
		})
	}
	for _, rec := range b.MedicalRecords {
		out.MedicalRecords = append(out.MedicalRecords, calendarRecord{
			ID:              rec.ID,
			PetID:           rec.PetID,
			VisitDate:       rec.VisitDate,
			NextAppointment: rec.NextAppointment,
			RecordType:      rec.RecordType,
			Diagnosis:       rec.Diagnosis,
			Veterinarian:    rec.Veterinarian,
		})
	}
	return out
}
