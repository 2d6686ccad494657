package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-record-guardian/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, pet_id,
	date, time,
	reason, notes, status,
	is_recurring, recurrence_pattern, recurrence_end_date,
	created_at, updated_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.PetID,
		a.Date,
		a.Time,
		a.Reason,
		a.Notes,
		string(a.Status),
		a.IsRecurring,
		string(a.RecurrencePattern),
		dateArg(a.RecurrenceEndDate),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			date = $2,
			time = $3,
			reason = $4,
			notes = $5,
			status = $6,
			is_recurring = $7,
			recurrence_pattern = $8,
			recurrence_end_date = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.Date,
		a.Time,
		a.Reason,
		a.Notes,
		string(a.Status),
		a.IsRecurring,
		string(a.RecurrencePattern),
		dateArg(a.RecurrenceEndDate),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	if len(filter.PetIDs) == 0 {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + appointmentColumns + ` FROM appointments WHERE pet_id IN (`)

	ph, args := inPlaceholders(filter.PetIDs, nil)
	sb.WriteString(ph + ")")

	if filter.From != nil {
		args = append(args, *filter.From)
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", len(args)))
	}
	sb.WriteString(" ORDER BY date ASC, created_at ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var status, pattern string
	var date, end scanDate
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&date,
		&a.Time,
		&a.Reason,
		&a.Notes,
		&status,
		&a.IsRecurring,
		&pattern,
		&end,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	a.Date = date.d
	a.Status = appointments.Status(status)
	a.RecurrencePattern = appointments.RecurrencePattern(pattern)
	a.RecurrenceEndDate = end.ptr()
	return a, nil
}
