// Package notify keeps the live notification set for a user, suppressing
// notifications the user has dismissed.
//
// Dismissals survive restarts: their identifiers are stored as a JSON list
// under DismissedKey in a kv.Store. A dismissed identifier never re-enters
// the live set until the store is cleared or the record is pruned.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/starford/vetdesk/internal/checksum"
	"github.com/starford/vetdesk/internal/kv"
	"github.com/starford/vetdesk/internal/models"
)

// DismissedKey is the store key holding dismissal records.
const DismissedKey = "dismissedNotifications"

// CorruptKey receives an undecodable dismissal list before it is replaced.
const CorruptKey = DismissedKey + ".corrupt"

// ID returns the identity of n, a digest of message, date and type.
func ID(n models.Notification) string {
	return checksum.Fields(n.Message, n.Date, string(n.Type))
}

// Dismissal records one dismissed identifier.
type Dismissal struct {
	ID          string    `json:"id"`
	DismissedAt time.Time `json:"dismissedAt"`
}

// Observer receives the full live set after every change. Observers run
// synchronously and must not call back into the Deduplicator.
type Observer func([]models.Notification)

type subscription struct {
	id int
	fn Observer
}

// Option configures a Deduplicator.
type Option func(*Deduplicator)

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Deduplicator) { d.logger = l }
}

// WithClock overrides the time source used for dismissal timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Deduplicator) { d.now = now }
}

// Deduplicator owns the live notification set. All methods are safe for
// concurrent use; changes are applied and delivered in call order.
type Deduplicator struct {
	mu        sync.Mutex
	store     kv.Store
	logger    *slog.Logger
	now       func() time.Time
	live      []models.Notification
	observers []subscription
	nextSubID int
}

// New returns a Deduplicator persisting dismissals in store.
func New(store kv.Store, opts ...Option) *Deduplicator {
	d := &Deduplicator{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish replaces the live set with candidates minus dismissed and
// duplicate identifiers, then notifies observers. It returns the new set.
//
// Candidates sharing an identifier collapse to the first one, unlike a plain
// filtered copy: dismissing one copy must take its identifier out of the
// live set entirely.
func (d *Deduplicator) Publish(candidates []models.Notification) []models.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	dismissed := d.dismissedSetLocked()
	seen := make(map[string]struct{}, len(candidates))
	live := make([]models.Notification, 0, len(candidates))
	for _, n := range candidates {
		id := ID(n)
		if _, ok := dismissed[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		live = append(live, n)
	}
	d.live = live
	d.emitLocked()
	return slices.Clone(live)
}

// Add appends n unless it is dismissed or already live. It reports whether
// the live set changed.
func (d *Deduplicator) Add(n models.Notification) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := ID(n)
	if _, ok := d.dismissedSetLocked()[id]; ok {
		return false
	}
	for _, cur := range d.live {
		if ID(cur) == id {
			return false
		}
	}
	d.live = append(d.live, n)
	d.emitLocked()
	return true
}

// Dismiss removes the notification at index, records its identifier and
// notifies observers. Out-of-range indexes are a no-op returning false.
// A persistence failure is returned after the live set has been updated;
// a store that cannot be read is never overwritten.
func (d *Deduplicator) Dismiss(index int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.live) {
		return false, nil
	}
	id := ID(d.live[index])
	d.live = slices.Delete(slices.Clone(d.live), index, index+1)

	err := d.recordLocked(id)
	if err != nil {
		d.logger.Error("notify: persist dismissal failed",
			slog.String("id", id),
			slog.String("error", err.Error()))
	}
	d.emitLocked()
	return true, err
}

// Live returns a copy of the live set.
func (d *Deduplicator) Live() []models.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.live)
}

// Count returns the size of the live set.
func (d *Deduplicator) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// Clear empties the live set without recording dismissals.
func (d *Deduplicator) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.live = nil
	d.emitLocked()
}

// ClearDismissed forgets every dismissal. Notifications dismissed earlier
// reappear on the next Publish.
func (d *Deduplicator) ClearDismissed() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.store.Delete(DismissedKey); err != nil {
		return fmt.Errorf("notify: clear dismissed: %w", err)
	}
	return nil
}

// Dismissed returns the persisted dismissal records.
func (d *Deduplicator) Dismissed() ([]Dismissal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadLocked()
}

// Prune drops dismissal records older than before and returns how many
// were removed. Records without a timestamp are kept.
func (d *Deduplicator) Prune(before time.Time) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.loadLocked()
	if err != nil {
		return 0, err
	}
	kept := slices.DeleteFunc(slices.Clone(records), func(r Dismissal) bool {
		return !r.DismissedAt.IsZero() && r.DismissedAt.Before(before)
	})
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := d.saveLocked(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Subscribe registers fn, immediately delivers the current live set to it
// and returns a function that removes the subscription.
func (d *Deduplicator) Subscribe(fn Observer) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextSubID++
	id := d.nextSubID
	d.observers = append(d.observers, subscription{id: id, fn: fn})
	fn(slices.Clone(d.live))

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.observers = slices.DeleteFunc(d.observers, func(s subscription) bool {
			return s.id == id
		})
	}
}

func (d *Deduplicator) emitLocked() {
	for _, s := range d.observers {
		s.fn(slices.Clone(d.live))
	}
}

func (d *Deduplicator) dismissedSetLocked() map[string]struct{} {
	records, err := d.loadLocked()
	if err != nil {
		d.logger.Warn("notify: read dismissals failed, treating as empty",
			slog.String("error", err.Error()))
	}
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r.ID] = struct{}{}
	}
	return set
}

func (d *Deduplicator) recordLocked(id string) error {
	raw, ok, err := d.store.Get(DismissedKey)
	if err != nil {
		return fmt.Errorf("notify: load dismissals: %w", err)
	}
	var records []Dismissal
	if ok && raw != "" {
		records, err = decodeDismissals(raw)
		if err != nil {
			d.logger.Warn("notify: replacing unreadable dismissals",
				slog.String("backup", CorruptKey),
				slog.String("error", err.Error()))
			if err := d.store.Set(CorruptKey, raw); err != nil {
				return fmt.Errorf("notify: back up dismissals: %w", err)
			}
			records = nil
		}
	}
	if slices.ContainsFunc(records, func(r Dismissal) bool { return r.ID == id }) {
		return nil
	}
	return d.saveLocked(append(records, Dismissal{ID: id, DismissedAt: d.now().UTC()}))
}

func (d *Deduplicator) loadLocked() ([]Dismissal, error) {
	raw, ok, err := d.store.Get(DismissedKey)
	if err != nil {
		return nil, fmt.Errorf("notify: load dismissals: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	return decodeDismissals(raw)
}

// decodeDismissals parses a dismissal list. A plain JSON list of identifiers
// is also accepted.
func decodeDismissals(raw string) ([]Dismissal, error) {
	var records []Dismissal
	if err := json.Unmarshal([]byte(raw), &records); err == nil {
		return records, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("notify: decode dismissals: %w", err)
	}
	records = make([]Dismissal, 0, len(ids))
	for _, id := range ids {
		records = append(records, Dismissal{ID: id})
	}
	return records, nil
}

func (d *Deduplicator) saveLocked(records []Dismissal) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("notify: encode dismissals: %w", err)
	}
	if err := d.store.Set(DismissedKey, string(data)); err != nil {
		return fmt.Errorf("notify: save dismissals: %w", err)
	}
	return nil
}
