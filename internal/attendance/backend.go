package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

// ReceiptKind describes what a Login or Logoff did.
type ReceiptKind string

const (
	ReceiptOpened   ReceiptKind = "opened"   // local login, nothing persisted yet
	ReceiptAppended ReceiptKind = "appended" // local logoff, row appended
	ReceiptCreated  ReceiptKind = "created"  // remote login, new row
	ReceiptUpdated  ReceiptKind = "updated"  // remote login/logoff, existing row
)

// Receipt is the outcome of a successful Login or Logoff.
type Receipt struct {
	Kind   ReceiptKind
	Action string // "login" | "logoff"
	Name   string
	At     time.Time
	Record *models.AttendanceRecord // set for ReceiptAppended
	Target string                   // where the row went
}

// Message renders the receipt for the user.
func (r Receipt) Message() string {
	switch r.Kind {
	case ReceiptOpened:
		return fmt.Sprintf("Login time recorded: %s", r.At.Format(TimeLayout))
	case ReceiptAppended:
		return fmt.Sprintf("Logoff time recorded: %s. Attendance saved to %s", r.At.Format(TimeLayout), r.Target)
	case ReceiptCreated:
		return fmt.Sprintf("New entry created for %s at %s.", r.Name, r.At.Format(DateTimeLayout))
	default:
		return fmt.Sprintf("%s time updated for %s at %s.", capitalize(r.Action), r.Name, r.At.Format(DateTimeLayout))
	}
}

// Backend is the attendance store behind every front-end.
type Backend interface {
	Login(ctx context.Context, name string) (Receipt, error)
	Logoff(ctx context.Context, name string) (Receipt, error)
	Logs(ctx context.Context) (*models.LogTable, error)
	Describe() string
	Close() error
}

// SessionHolder is implemented by backends that keep an in-process session.
type SessionHolder interface {
	Session() *Session
}

// Watchable is implemented by backends stored in a local file.
type Watchable interface {
	WatchPath() string
}

// LocalBackend pairs the in-process session with the CSV journal.
type LocalBackend struct {
	session *Session
	journal *Journal
}

// NewLocalBackend creates a local backend.
func NewLocalBackend(session *Session, journal *Journal) *LocalBackend {
	return &LocalBackend{session: session, journal: journal}
}

// Login opens the session. Nothing is written until Logoff.
func (b *LocalBackend) Login(_ context.Context, name string) (Receipt, error) {
	name = strings.TrimSpace(name)
	start, err := b.session.Login(name)
	if err != nil {
		return Receipt{}, err
	}
	log.Printf("[local] session %s opened for %s", b.session.ID(), name)
	return Receipt{Kind: ReceiptOpened, Action: "login", Name: name, At: start, Target: b.journal.Path()}, nil
}

// Logoff closes the session and appends the completed record.
func (b *LocalBackend) Logoff(_ context.Context, name string) (Receipt, error) {
	name = strings.TrimSpace(name)
	id := b.session.ID()
	iv, err := b.session.Logoff(name)
	if err != nil {
		return Receipt{}, err
	}

	rec := models.AttendanceRecord{
		EmployeeName: name,
		Date:         iv.Date,
		StartTime:    iv.StartTime(),
		EndTime:      iv.EndTime(),
	}
	if err := b.journal.AppendRecord(rec); err != nil {
		log.Printf("[local] session %s closed but append failed: %v", id, err)
		return Receipt{}, err
	}
	log.Printf("[local] session %s closed for %s (%s-%s)", id, name, rec.StartTime, rec.EndTime)
	return Receipt{Kind: ReceiptAppended, Action: "logoff", Name: name, At: iv.End, Record: &rec, Target: b.journal.Path()}, nil
}

// Logs reads the journal. A missing file yields an empty table with Missing set.
func (b *LocalBackend) Logs(_ context.Context) (*models.LogTable, error) {
	table := &models.LogTable{Columns: append([]string(nil), JournalHeader...)}

	records, err := b.journal.ReadAll()
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			table.Missing = true
			return table, nil
		}
		return nil, err
	}
	for _, rec := range records {
		table.Rows = append(table.Rows, rec.Fields())
	}
	return table, nil
}

// Describe names the backend for display.
func (b *LocalBackend) Describe() string {
	return "local " + b.journal.Path()
}

// Close is a no-op; the journal holds no open handles.
func (b *LocalBackend) Close() error { return nil }

// Session exposes the in-process session.
func (b *LocalBackend) Session() *Session { return b.session }

// WatchPath returns the journal file.
func (b *LocalBackend) WatchPath() string { return b.journal.Path() }

// RemoteBackend writes straight to the roster; it keeps no session state.
type RemoteBackend struct {
	roster  *Roster
	label   string
	watch   string
	timeout time.Duration
	closer  func() error
}

// RemoteOption configures a RemoteBackend.
type RemoteOption func(*RemoteBackend)

// WithLabel sets the Describe text.
func WithLabel(label string) RemoteOption {
	return func(b *RemoteBackend) { b.label = label }
}

// WithWatchPath marks the backend as stored in a local file.
func WithWatchPath(path string) RemoteOption {
	return func(b *RemoteBackend) { b.watch = path }
}

// WithTimeout bounds every worksheet call.
func WithTimeout(d time.Duration) RemoteOption {
	return func(b *RemoteBackend) { b.timeout = d }
}

// WithCloser releases driver resources on Close.
func WithCloser(fn func() error) RemoteOption {
	return func(b *RemoteBackend) { b.closer = fn }
}

// NewRemoteBackend creates a remote backend over roster.
func NewRemoteBackend(roster *Roster, opts ...RemoteOption) *RemoteBackend {
	b := &RemoteBackend{roster: roster, label: "remote"}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Login records the login time against the employee's row.
func (b *RemoteBackend) Login(ctx context.Context, name string) (Receipt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Receipt{}, ErrMissingName
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	res, err := b.roster.RecordLogin(ctx, name)
	if err != nil {
		return Receipt{}, err
	}
	kind := ReceiptUpdated
	if res.Kind == UpsertCreated {
		kind = ReceiptCreated
	}
	log.Printf("[remote] login %s for %s at row %d", kind, name, res.Row)
	return Receipt{Kind: kind, Action: "login", Name: name, At: res.At, Target: b.label}, nil
}

// Logoff records the logoff time against the employee's row.
func (b *RemoteBackend) Logoff(ctx context.Context, name string) (Receipt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Receipt{}, ErrMissingName
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	res, err := b.roster.RecordLogoff(ctx, name)
	if err != nil {
		return Receipt{}, err
	}
	log.Printf("[remote] logoff updated for %s at row %d", name, res.Row)
	return Receipt{Kind: ReceiptUpdated, Action: "logoff", Name: name, At: res.At, Target: b.label}, nil
}

// Logs fetches every roster row.
func (b *RemoteBackend) Logs(ctx context.Context) (*models.LogTable, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	rows, err := b.roster.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	table := &models.LogTable{Columns: append([]string(nil), RosterHeader...)}
	for _, row := range rows {
		table.Rows = append(table.Rows, row.Fields())
	}
	return table, nil
}

// Describe names the backend for display.
func (b *RemoteBackend) Describe() string { return b.label }

// Close releases driver resources.
func (b *RemoteBackend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// WatchPath returns the workbook path for file-backed drivers, or "".
func (b *RemoteBackend) WatchPath() string { return b.watch }

func (b *RemoteBackend) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
