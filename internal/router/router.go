package router

import (
	"database/sql"
	"net/http"

	_ "pet-record-guardian/docs"
	mem "pet-record-guardian/internal/adapters/storage/memory"
	pg "pet-record-guardian/internal/adapters/storage/postgres"
	"pet-record-guardian/internal/domain/appointments"
	"pet-record-guardian/internal/domain/calendar"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/domain/medicalrecords"
	"pet-record-guardian/internal/domain/medications"
	"pet-record-guardian/internal/domain/notifications"
	"pet-record-guardian/internal/domain/pets"
	"pet-record-guardian/internal/middleware"
	"pet-record-guardian/internal/platform/logger"
	"pet-record-guardian/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger

	// Clock fija "hoy" para todos los estados derivados. Cero => reloj del sistema en Local.
	Clock datewindow.Clock

	LookaheadDays       int // <0 => default de notifications
	RefillThresholdDays int // <0 => default de medications
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	clock := opts.Clock
	if clock.Now == nil {
		clock = datewindow.SystemClock(nil)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		petRepo    pets.Repository
		apptRepo   appointments.Repository
		medRepo    medications.Repository
		medLogRepo medications.LogRepository
		recordRepo medicalrecords.Repository
	)

	if db := opts.DB; db != nil {
		petRepo = pg.NewPetsRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db)
		medRepo = pg.NewMedicationsRepo(db)
		medLogRepo = pg.NewMedicationLogsRepo(db)
		recordRepo = pg.NewMedicalRecordsRepo(db)
		log.Info("storage ready", map[string]any{"driver": "postgres"})
	} else {
		petRepo = mem.NewPetRepo()
		apptRepo = mem.NewAppointmentRepo()
		medRepo = mem.NewMedicationRepo()
		medLogRepo = mem.NewMedicationLogRepo()
		recordRepo = mem.NewMedicalRecordRepo()
		log.Info("storage ready", map[string]any{"driver": "memory"})
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, clock, log)
	apptSvc := appointments.NewService(apptRepo, clock, log)
	medSvc := medications.NewService(medRepo, medLogRepo, clock, log, opts.RefillThresholdDays)
	recordsSvc := medicalrecords.NewService(recordRepo, clock, log)
	calendarSvc := calendar.NewService(apptSvc, recordsSvc, clock, log)
	notifySvc := notifications.NewService(apptSvc, clock, log, opts.LookaheadDays)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	appointments.RegisterRoutes(r, apptSvc, petsSvc)
	medications.RegisterRoutes(r, medSvc, petsSvc)
	medicalrecords.RegisterRoutes(r, recordsSvc, petsSvc)
	calendar.RegisterRoutes(r, calendarSvc, petsSvc)
	notifications.RegisterRoutes(r, notifySvc, petsSvc)

	return r
}
