// Package host serializes requests to the statistics object the way a
// data-model runtime does: one request at a time, each one logged and
// reported to an observer.
package host

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/irctrakz/connstats/pkg/dm"
	"github.com/irctrakz/connstats/pkg/logging"
)

// Operation names reported to observers.
const (
	OpRead    = "read"
	OpWrite   = "write"
	OpExecute = "execute"
	OpReset   = "reset"
)

// Observer receives the outcome of every request.
type Observer interface {
	ObserveRequest(op string, status dm.Status)
}

// Snapshot is a consistent view of every readable resource.
type Snapshot struct {
	Timestamp        time.Time `json:"ts"`
	State            string    `json:"state"`
	TxKilobytes      int64     `json:"tx_kb"`
	RxKilobytes      int64     `json:"rx_kb"`
	CollectionPeriod int64     `json:"collection_period"`
	Err              string    `json:"error,omitempty"`
}

// Host owns the object and funnels all access through a mutex.
type Host struct {
	mu        sync.Mutex
	obj       *dm.Object
	observers []Observer
	log       *logrus.Entry
}

// Option configures a Host.
type Option func(*Host)

// WithObserver registers o for request outcomes.
func WithObserver(o Observer) Option {
	return func(h *Host) {
		if o != nil {
			h.observers = append(h.observers, o)
		}
	}
}

// New wraps obj.
func New(obj *dm.Object, opts ...Option) *Host {
	h := &Host{obj: obj, log: logging.For("host")}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddObserver registers o after construction.
func (h *Host) AddObserver(o Observer) {
	if o == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, o)
}

// Read reads rid.
func (h *Host) Read(rid dm.ResourceID) (dm.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, err := h.obj.Read(rid)
	h.done(OpRead, rid, err)
	return v, err
}

// Write writes v to rid.
func (h *Host) Write(rid dm.ResourceID, v dm.Value) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.obj.Write(rid, v)
	h.done(OpWrite, rid, err)
	return err
}

// Execute executes rid.
func (h *Host) Execute(rid dm.ResourceID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.obj.Execute(rid)
	h.done(OpExecute, rid, err)
	return err
}

// InstanceReset resets the single instance.
func (h *Host) InstanceReset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.obj.InstanceReset()
	h.report(OpReset, logrus.Fields{"iid": dm.InstanceID}, err)
	return err
}

// State returns the collection window state.
func (h *Host) State() dm.CollectionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.obj.State()
}

// Snapshot reads all derived resources under a single lock. Read failures
// are recorded in Err; snapshots are not reported to observers.
func (h *Host) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap := Snapshot{
		Timestamp: time.Now().UTC(),
		State:     h.obj.State().String(),
	}
	var errs []error
	if v, err := h.obj.Read(dm.TxKilobytes); err == nil {
		snap.TxKilobytes = v.Int
	} else {
		errs = append(errs, err)
	}
	if v, err := h.obj.Read(dm.RxKilobytes); err == nil {
		snap.RxKilobytes = v.Int
	} else {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		snap.Err = err.Error()
	}
	if v, err := h.obj.Read(dm.CollectionPeriod); err == nil {
		snap.CollectionPeriod = v.Int
	}
	return snap
}

func (h *Host) done(op string, rid dm.ResourceID, err error) {
	h.report(op, logrus.Fields{"rid": uint16(rid)}, err)
}

func (h *Host) report(op string, fields logrus.Fields, err error) {
	status := dm.StatusOf(err)
	fields["op"] = op
	fields["status"] = status.String()
	if status == dm.StatusInternal {
		h.log.WithFields(fields).Warnf("request failed: %v", err)
	} else if err != nil {
		h.log.WithFields(fields).Debugf("request rejected: %v", err)
	} else {
		h.log.WithFields(fields).Debug("request ok")
	}
	for _, o := range h.observers {
		o.ObserveRequest(op, status)
	}
}
