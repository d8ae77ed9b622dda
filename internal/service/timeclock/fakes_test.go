package timeclock

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/config"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/domain/employee"
	"github.com/gruamaster/ponto-backend-go/internal/domain/holiday"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/queue"
	"github.com/gruamaster/ponto-backend-go/internal/service/file"
	"github.com/jackc/pgx/v5"
)

type memoryRecords struct {
	mu   sync.Mutex
	rows map[string]timeclock.Record
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{rows: map[string]timeclock.Record{}}
}

func (m *memoryRecords) Insert(ctx context.Context, r timeclock.Record) (timeclock.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.EmployeeID == r.EmployeeID && row.Date.Equal(r.Date) {
			return row, false, nil
		}
	}
	r.Version = 1
	m.rows[r.ID] = r
	return r, true, nil
}

func (m *memoryRecords) GetByID(ctx context.Context, id string) (timeclock.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return timeclock.Record{}, pgx.ErrNoRows
	}
	return r, nil
}

func (m *memoryRecords) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timeclock.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.EmployeeID == employeeID && row.Date.Equal(date) {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryRecords) Update(ctx context.Context, r timeclock.Record) (timeclock.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[r.ID]
	if !ok || cur.Version != r.Version {
		return timeclock.Record{}, timeclock.ErrConcurrentModification
	}
	r.Version++
	m.rows[r.ID] = r
	return r, nil
}

func (m *memoryRecords) List(ctx context.Context, filter timeclock.RecordFilter) ([]timeclock.Record, int64, error) {
	all := m.sorted()
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *memoryRecords) Find(ctx context.Context, q timeclock.RecordQuery) ([]timeclock.Record, error) {
	var out []timeclock.Record
	for _, r := range m.sorted() {
		switch {
		case q.EmployeeID != nil && r.EmployeeID != *q.EmployeeID,
			q.WorkSiteID != nil && (r.WorkSiteID == nil || *r.WorkSiteID != *q.WorkSiteID),
			q.StartDate != nil && r.Date.Before(*q.StartDate),
			q.EndDate != nil && r.Date.After(*q.EndDate),
			q.Date != nil && !r.Date.Equal(*q.Date),
			q.Status != nil && r.Status != *q.Status,
			q.OvertimeOnly && r.OvertimeHours <= 0,
			q.ZeroHoursOnly && r.WorkedHours != 0,
			q.ContinuousOnly && !r.ContinuousWork,
			q.Unconfirmed && r.ContinuousWorkConfirmedAt != nil:
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryRecords) GetByIDs(ctx context.Context, ids []string) ([]timeclock.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []timeclock.Record
	for _, id := range ids {
		if r, ok := m.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRecords) sorted() []timeclock.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]timeclock.Record, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// put stores r as-is, for arranging test state.
func (m *memoryRecords) put(r timeclock.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.Version == 0 {
		r.Version = 1
	}
	m.rows[r.ID] = r
}

type memoryHistory struct {
	entries []timeclock.Alteration
}

func (m *memoryHistory) CreateBatch(ctx context.Context, entries []timeclock.Alteration) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *memoryHistory) ListByRecord(ctx context.Context, recordID string) ([]timeclock.Alteration, error) {
	var out []timeclock.Alteration
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].RecordID == recordID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

type memoryEvents struct {
	events []timeclock.ApprovalEvent
	err    error
}

func (m *memoryEvents) Append(ctx context.Context, e timeclock.ApprovalEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memoryEvents) ListByRecord(ctx context.Context, recordID string) ([]timeclock.ApprovalEvent, error) {
	var out []timeclock.ApprovalEvent
	for _, e := range m.events {
		if e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memoryEmployees struct {
	employees map[string]employee.Employee
	sites     map[string]employee.WorkSite
}

func (m *memoryEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func (m *memoryEmployees) ListActive(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if !e.IsActive() {
			continue
		}
		if filter.WorkSiteID != nil && (e.WorkSiteID == nil || *e.WorkSiteID != *filter.WorkSiteID) {
			continue
		}
		if len(filter.IDs) > 0 && !contains(filter.IDs, e.ID) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryEmployees) GetWorkSite(ctx context.Context, id string) (employee.WorkSite, error) {
	s, ok := m.sites[id]
	if !ok {
		return employee.WorkSite{}, pgx.ErrNoRows
	}
	return s, nil
}

type memoryHolidays struct {
	holidays []holiday.Holiday
}

func (m *memoryHolidays) ListByDate(ctx context.Context, date time.Time, state *string) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range m.holidays {
		if !h.Date.Equal(date) {
			continue
		}
		if h.State != nil && (state == nil || *h.State != *state) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type staticAuthorizer struct {
	caller auth.Caller
	admin  bool
	err    error
}

func (a *staticAuthorizer) Caller(ctx context.Context) (auth.Caller, error) {
	if a.err != nil {
		return auth.Caller{}, a.err
	}
	return a.caller, nil
}

func (a *staticAuthorizer) IsAdmin(ctx context.Context, employeeID string) bool { return a.admin }

func (a *staticAuthorizer) CanApprove(ctx context.Context) bool { return a.admin }

type recordingNotifier struct {
	notification.Service
	sent []notification.CreateNotificationRequest
	err  error
}

func (n *recordingNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, req)
	return nil
}

type recordingPublisher struct {
	events []queue.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e queue.Event) error {
	p.events = append(p.events, e)
	return nil
}

type fakeFiles struct {
	file.FileService
	uploaded []string
	deleted  []string
	err      error
}

func (f *fakeFiles) UploadSignature(ctx context.Context, recordID, managerID, encoded string, at time.Time) (file.StoredFile, error) {
	if f.err != nil {
		return file.StoredFile{}, f.err
	}
	path := "assinaturas/assinatura_" + recordID + "_" + managerID + ".png"
	f.uploaded = append(f.uploaded, path)
	return file.StoredFile{Path: path, Digest: "digest", Size: len(encoded)}, nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

var errStorageDown = errors.New("storage unavailable")

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// fixture bundles a service dependency set with handles to every fake.
type fixture struct {
	records   *memoryRecords
	history   *memoryHistory
	events    *memoryEvents
	employees *memoryEmployees
	holidays  *memoryHolidays
	authz     *staticAuthorizer
	notifier  *recordingNotifier
	publisher *recordingPublisher
	files     *fakeFiles
	policy    *config.Policy
	now       time.Time
}

const (
	siteA = "site-a"
	siteB = "site-b"
)

func newFixture() *fixture {
	policy, err := config.LoadPolicy("")
	if err != nil {
		panic(err)
	}
	spState := "SP"
	lat, lon := -23.5503, -46.6339

	f := &fixture{
		records: newMemoryRecords(),
		history: &memoryHistory{},
		events:  &memoryEvents{},
		employees: &memoryEmployees{
			employees: map[string]employee.Employee{
				"op-1":     {ID: "op-1", Name: "João Silva", Role: "Operário", WorkSiteID: strPtr(siteA), Status: "Ativo"},
				"sin-1":    {ID: "sin-1", Name: "Maria Souza", Role: "sinaleiro", WorkSiteID: strPtr(siteA), Status: "Ativo"},
				"tec-1":    {ID: "tec-1", Name: "Pedro Lima", Role: "Técnico Manutenção", WorkSiteID: strPtr(siteB), Status: "Ativo"},
				"gone-1":   {ID: "gone-1", Name: "Ana Costa", Role: "Operário", WorkSiteID: strPtr(siteA), Status: "Inativo"},
				"sup-a":    {ID: "sup-a", Name: "Carlos Supervisor", Role: "Supervisor", WorkSiteID: strPtr(siteA), Status: "Ativo"},
				"sup-b":    {ID: "sup-b", Name: "Beatriz Gerente", Role: "Gerente", WorkSiteID: strPtr(siteB), Status: "Ativo"},
				"sup-gone": {ID: "sup-gone", Name: "Rui Antigo", Role: "Supervisor", WorkSiteID: strPtr(siteA), Status: "Desligado"},
			},
			sites: map[string]employee.WorkSite{
				siteA: {ID: siteA, Name: "Obra Paulista", State: &spState, Latitude: &lat, Longitude: &lon},
			},
		},
		holidays:  &memoryHolidays{},
		authz:     &staticAuthorizer{caller: auth.Caller{UserID: "user-sup-a", EmployeeID: strPtr("sup-a"), Role: "Supervisor", Level: 5}},
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		files:     &fakeFiles{},
		policy:    policy,
		now:       time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
	return f
}

func (f *fixture) deps() Dependencies {
	return Dependencies{
		Records:    f.records,
		History:    f.history,
		Events:     f.events,
		Employees:  f.employees,
		Holidays:   f.holidays,
		Tx:         passthroughTx{},
		Authorizer: f.authz,
		Notifier:   f.notifier,
		Publisher:  f.publisher,
		Files:      f.files,
		Policy:     f.policy,
		Location:   time.UTC,
		Clock:      func() time.Time { return f.now },
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (f *fixture) recordService() timeclock.RecordService {
	return NewRecordService(f.deps())
}

func (f *fixture) approvalService() timeclock.ApprovalService {
	return NewApprovalService(f.deps())
}

// pendingRecord stores a Saturday record with overtime awaiting approval.
func (f *fixture) pendingRecord(id, employeeID string) timeclock.Record {
	r := recordOn("2026-10-17", "sabado", "07:00", "", "", "19:00")
	r.ID = id
	r.EmployeeID = employeeID
	r.WorkSiteID = strPtr(siteA)
	DefaultCalculator().Apply(&r)
	f.records.put(r)
	return r
}
