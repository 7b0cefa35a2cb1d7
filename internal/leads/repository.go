package leads

import (
	"context"
	"sync"
	"time"

	"github.com/secureitservices/leadgate/internal/csvlog"
)

// Header is the fixed first row of the lead log. Field order is the wire
// format of the store and must never change.
var Header = []string{
	"Timestamp", "IP", "Full Name", "Email", "Phone",
	"Service", "Preferred DateTime", "Message", "Status",
}

// Full Name, Service and Message are always quote-wrapped in the log.
var quotedColumns = []bool{false, false, true, false, false, true, false, true, false}

// Repository defines the interface for durable lead storage. The store is
// append-only; there are no update or delete operations.
type Repository interface {
	Append(ctx context.Context, lead *Lead) error
	ReadAll(ctx context.Context) ([]*Lead, error)
}

// CSVRepository stores leads in an append-only CSV log on disk.
type CSVRepository struct {
	log *csvlog.Log
	now func() time.Time
}

// NewCSVRepository creates a repository backed by the CSV log at path.
func NewCSVRepository(path string) (*CSVRepository, error) {
	log, err := csvlog.New(path, Header, quotedColumns)
	if err != nil {
		return nil, err
	}
	return &CSVRepository{log: log, now: time.Now}, nil
}

// LogPath returns the location of the backing CSV file.
func (r *CSVRepository) LogPath() string {
	return r.log.Path()
}

// Append stamps the lead with the current instant and writes it as one
// durable row. The timestamp is set here, at append time, and the lead is
// immutable afterwards.
func (r *CSVRepository) Append(ctx context.Context, lead *Lead) error {
	lead.Timestamp = r.now().UTC()
	if lead.Status == "" {
		lead.Status = StatusNew
	}
	return r.log.Append(leadToRow(lead))
}

// ReadAll reconstructs every lead from the log in append order, oldest
// first. Rows that fail to parse are skipped, matching the log's defensive
// read discipline.
func (r *CSVRepository) ReadAll(ctx context.Context) ([]*Lead, error) {
	rows, err := r.log.ReadAll()
	if err != nil {
		return nil, err
	}

	leads := make([]*Lead, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			continue
		}
		leads = append(leads, &Lead{
			Timestamp:         ts,
			IP:                row[1],
			FullName:          row[2],
			Email:             row[3],
			Phone:             row[4],
			Service:           row[5],
			PreferredDateTime: row[6],
			Message:           row[7],
			Status:            row[8],
		})
	}
	return leads, nil
}

func leadToRow(lead *Lead) []string {
	ip := lead.IP
	if ip == "" {
		ip = "Unknown"
	}
	preferred := lead.PreferredDateTime
	if preferred == "" {
		preferred = NotSpecified
	}
	return []string{
		lead.Timestamp.Format(time.RFC3339),
		ip,
		lead.FullName,
		lead.Email,
		lead.Phone,
		lead.Service,
		preferred,
		lead.Message,
		lead.Status,
	}
}

// InMemoryRepository is an in-memory Repository used in tests and local
// development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads []*Lead
	now   func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{now: time.Now}
}

// Append stamps and records the lead in memory.
func (r *InMemoryRepository) Append(ctx context.Context, lead *Lead) error {
	lead.Timestamp = r.now().UTC()
	if lead.Status == "" {
		lead.Status = StatusNew
	}

	stored := *lead
	r.mu.Lock()
	r.leads = append(r.leads, &stored)
	r.mu.Unlock()
	return nil
}

// ReadAll returns stored leads in append order.
func (r *InMemoryRepository) ReadAll(ctx context.Context) ([]*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Lead, len(r.leads))
	for i, lead := range r.leads {
		copied := *lead
		out[i] = &copied
	}
	return out, nil
}
