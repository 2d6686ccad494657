package notifications

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/datewindow"
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
	r.Get("/notifications", listNotificationsHandler(svc, pets))
}

type notificationResponse struct {
	ID            string                     `json:"id"`
	Kind          Kind                       `json:"kind"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	Date          datewindow.Date            `json:"date"`
	Time          string                     `json:"time,omitempty"`
	PetID         string                     `json:"pet_id"`
	AppointmentID string                     `json:"appointment_id"`
	DisplayStatus appointments.DisplayStatus `json:"display_status"`
}

// listNotificationsHandler godoc
// @Summary Feed de notificaciones
// @Description Citas vencidas (overdue) primero y después las próximas (hoy, mañana, dentro de lookahead_days). Se recalcula en cada lectura.
// @Tags notifications
// @Produce json
// @Param lookahead_days query int false "Ventana de próximas en días (0-365). Por defecto la configurada"
// @Param pet_id query string false "Limitar a una mascota"
// @Success 200 {array} notificationResponse
// @Failure 400 {string} string "lookahead_days must be between 0 and 365"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /notifications [get]
func listNotificationsHandler(svc *Service, pets PetDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lookahead := -1
		if v := strings.TrimSpace(r.URL.Query().Get("lookahead_days")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 || n > 365 {
				http.Error(w, "lookahead_days must be between 0 and 365", http.StatusBadRequest)
				return
			}
			lookahead = n
		}

		var petIDs []string
		if petID := strings.TrimSpace(r.URL.Query().Get("pet_id")); petID != "" {
			ownerID, err := pets.OwnerOf(r.Context(), petID)
			if err != nil || strings.TrimSpace(ownerID) == "" {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			if ownerID != userID {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			petIDs = []string{petID}
		} else {
			ids, err := pets.PetIDsByOwner(r.Context(), userID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			petIDs = ids
		}

		items, err := svc.Feed(r.Context(), petIDs, lookahead)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, notificationResponse{
				ID:            n.ID,
				Kind:          n.Kind,
				Title:         n.Title,
				Description:   n.Description,
				Date:          n.Date,
				Time:          n.Time,
				PetID:         n.PetID,
				AppointmentID: n.AppointmentID,
				DisplayStatus: n.DisplayStatus,
			})
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}
