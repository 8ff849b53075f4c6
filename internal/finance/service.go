package finance

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/financiero/internal/history"
	"github.com/yourorg/financiero/internal/report"
)

// Record is the formatted projection of one history entry.
type Record struct {
	ID         string    `json:"id"`
	Seq        int       `json:"seq"`
	Domain     Domain    `json:"domain"`
	RecordedAt time.Time `json:"recordedAt"`
	Result     Result    `json:"result"`
	Display    []Field   `json:"display"`
	Summary    string    `json:"summary"`
	Hash       string    `json:"hash"`
}

// Service parses raw form input, runs the calculators and keeps one history
// log per domain for the lifetime of the process.
type Service struct {
	cfg       Config
	calc      Calculator
	products  *history.Log[ProductResult]
	employers *history.Log[EmployerResult]
	employees *history.Log[EmployeeResult]
	logger    *slog.Logger
}

func NewService(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		calc:      NewCalculator(cfg.Rates),
		products:  history.New[ProductResult](),
		employers: history.New[EmployerResult](),
		employees: history.New[EmployeeResult](),
		logger:    logger,
	}
}

// Calculator exposes the pure calculators behind the service.
func (s *Service) Calculator() Calculator { return s.calc }

// Calculate parses f for domain d, computes the result and appends it to the
// domain's history. On failure history is left untouched.
func (s *Service) Calculate(d Domain, f Fields) (Record, error) {
	var (
		res Result
		err error
	)
	switch d {
	case DomainProduct:
		res, err = s.product(f)
	case DomainEmployer:
		res, err = s.employer(f)
	case DomainEmployee:
		res, err = s.employee(f)
	default:
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownDomain, d)
	}
	if err != nil {
		s.logRejected(d, err)
		return Record{}, err
	}
	return s.Append(res)
}

func (s *Service) product(f Fields) (Result, error) {
	in, err := ParseProductInput(f)
	if err != nil {
		return nil, err
	}
	res, err := s.calc.CalculateProduct(in)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) employer(f Fields) (Result, error) {
	in, err := ParseEmployerInput(f)
	if err != nil {
		return nil, err
	}
	res, err := s.calc.CalculateEmployer(in)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) employee(f Fields) (Result, error) {
	in, err := ParseEmployeeInput(f)
	if err != nil {
		return nil, err
	}
	res, err := s.calc.CalculateEmployee(in)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Append stores r in the history log of its domain.
func (s *Service) Append(r Result) (Record, error) {
	var (
		rec Record
		err error
	)
	switch v := r.(type) {
	case ProductResult:
		rec, err = appendTo(s.products, v)
	case EmployerResult:
		rec, err = appendTo(s.employers, v)
	case EmployeeResult:
		rec, err = appendTo(s.employees, v)
	default:
		return Record{}, fmt.Errorf("%w: %T", ErrUnknownDomain, r)
	}
	if err != nil {
		s.logger.Error("history append failed", "domain", r.Domain(), "error", err)
		return Record{}, err
	}
	s.logger.Debug("calculation recorded", "domain", rec.Domain, "seq", rec.Seq, "id", rec.ID)
	return rec, nil
}

// History lists the records of domain d, oldest first.
func (s *Service) History(d Domain) ([]Record, error) {
	switch d {
	case DomainProduct:
		return records(s.products.List()), nil
	case DomainEmployer:
		return records(s.employers.List()), nil
	case DomainEmployee:
		return records(s.employees.List()), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, d)
}

// HistoryTail lists the last n records of domain d; n <= 0 lists all of them.
func (s *Service) HistoryTail(d Domain, n int) ([]Record, error) {
	switch d {
	case DomainProduct:
		return records(s.products.Tail(n)), nil
	case DomainEmployer:
		return records(s.employers.Tail(n)), nil
	case DomainEmployee:
		return records(s.employees.Tail(n)), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, d)
}

// Find returns the record of domain d with the given id.
func (s *Service) Find(d Domain, id string) (Record, bool, error) {
	recs, err := s.History(d)
	if err != nil {
		return Record{}, false, err
	}
	for _, rec := range recs {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

// Verify checks the hash chain of every history log.
func (s *Service) Verify() error {
	return errors.Join(
		wrapChain(DomainProduct, s.products.Verify()),
		wrapChain(DomainEmployer, s.employers.Verify()),
		wrapChain(DomainEmployee, s.employees.Verify()),
	)
}

// Table renders the history of d as a report table.
func (s *Service) Table(d Domain) (report.Table, error) {
	recs, err := s.History(d)
	if err != nil {
		return report.Table{}, err
	}
	t := report.Table{
		Title:       fmt.Sprintf("%s · %s", s.cfg.ReportTitlePrefix, d.Label()),
		Columns:     []string{"#", "Fecha"},
		GeneratedAt: time.Now().UTC(),
	}
	for _, f := range zeroDisplay(d) {
		t.Columns = append(t.Columns, f.Label)
	}
	for _, rec := range recs {
		row := []string{fmt.Sprint(rec.Seq), rec.RecordedAt.Format(time.RFC3339)}
		for _, f := range rec.Display {
			row = append(row, f.Value)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (s *Service) logRejected(d Domain, err error) {
	var calcErr *CalculationError
	if errors.As(err, &calcErr) {
		s.logger.Info("calculation rejected", "domain", d, "kind", calcErr.Kind, "field", calcErr.Field)
		return
	}
	s.logger.Warn("calculation failed", "domain", d, "error", err)
}

func appendTo[T Result](log *history.Log[T], v T) (Record, error) {
	entry, err := log.Append(v)
	if err != nil {
		return Record{}, err
	}
	return toRecord(entry), nil
}

func records[T Result](entries []history.Entry[T]) []Record {
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = toRecord(e)
	}
	return out
}

func toRecord[T Result](e history.Entry[T]) Record {
	return Record{
		ID:         e.ID,
		Seq:        e.Seq,
		Domain:     e.Value.Domain(),
		RecordedAt: e.RecordedAt,
		Result:     e.Value,
		Display:    e.Value.Display(),
		Summary:    e.Value.Summary(),
		Hash:       e.Hash,
	}
}

func zeroDisplay(d Domain) []Field {
	switch d {
	case DomainProduct:
		return ProductResult{}.Display()
	case DomainEmployer:
		return EmployerResult{}.Display()
	case DomainEmployee:
		return EmployeeResult{}.Display()
	}
	return nil
}

func wrapChain(d Domain, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s history: %w", d, err)
}
