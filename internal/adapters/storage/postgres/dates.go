package postgres

import (
	"fmt"
	"strings"

	"pet-record-guardian/internal/domain/datewindow"
)

// scanDate nunca falla el Scan: una fecha ilegible queda en cero y el service
// descarta la fila con un warning en vez de abortar todo el listado.
type scanDate struct {
	d datewindow.Date
}

func (s *scanDate) Scan(src any) error {
	if err := s.d.Scan(src); err != nil {
		s.d = datewindow.Date{}
	}
	return nil
}

func (s scanDate) ptr() *datewindow.Date {
	if s.d.IsZero() {
		return nil
	}
	d := s.d
	return &d
}

// dateArg pasa un *Date opcional como NULL o DATE.
func dateArg(d *datewindow.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return *d
}

// inPlaceholders arma "$n,$n+1,..." y agrega los valores a args.
func inPlaceholders(values []string, args []any) (string, []any) {
	ph := make([]string, 0, len(values))
	for _, v := range values {
		args = append(args, v)
		ph = append(ph, fmt.Sprintf("$%d", len(args)))
	}
	return strings.Join(ph, ","), args
}
