package dm

import (
	"errors"

	"github.com/irctrakz/connstats/pkg/stats"
)

// CollectionState is the state of the collection window.
type CollectionState int

const (
	Idle CollectionState = iota
	Collecting
)

func (s CollectionState) String() string {
	if s == Collecting {
		return "collecting"
	}
	return "idle"
}

// Object is the single instance of the Connectivity Statistics object. It is
// not safe for concurrent use; the host delivers one request at a time.
type Object struct {
	state    stats.State
	counters stats.Counters
}

// New creates an idle object sampling counters.
func New(counters stats.Counters) *Object {
	return &Object{counters: counters}
}

// State reports whether a collection window is open.
func (o *Object) State() CollectionState {
	if o.state.Collecting() {
		return Collecting
	}
	return Idle
}

// Instances lists the instance ids; there is always exactly one.
func (o *Object) Instances() []uint16 {
	return []uint16{InstanceID}
}

// InstancePresent reports whether iid names the object's instance.
func (o *Object) InstancePresent(iid uint16) bool {
	return iid == InstanceID
}

// ResourcePresent reports whether rid is part of the fixed catalogue.
func (o *Object) ResourcePresent(rid ResourceID) bool {
	return rid.Valid()
}

// Read returns the value of a readable resource.
func (o *Object) Read(rid ResourceID) (Value, error) {
	switch rid {
	case SMSTxCounter, SMSRxCounter, MaxMessageSize, AvgMessageSize:
		// Not tracked; always reported as zero.
		return Int32(0), nil
	case TxKilobytes:
		d, err := o.state.TxDelta(o.counters)
		if err != nil {
			return Value{}, fail(StatusInternal, "read", rid, err)
		}
		return Int64(int64(d / 1024)), nil
	case RxKilobytes:
		d, err := o.state.RxDelta(o.counters)
		if err != nil {
			return Value{}, fail(StatusInternal, "read", rid, err)
		}
		return Int64(int64(d / 1024)), nil
	case CollectionPeriod:
		return Int64(int64(o.state.CollectionPeriod())), nil
	}
	// Executable resources have no value and read like unknown ones.
	return Value{}, fail(StatusNotFound, "read", rid, nil)
}

// Write stores v into a writable resource. Only the collection period is writable.
func (o *Object) Write(rid ResourceID, v Value) error {
	switch rid {
	case CollectionPeriod:
		if v.Int < 0 {
			return fail(StatusInvalidArgument, "write", rid, stats.ErrInvalidArgument)
		}
		if err := o.state.SetCollectionPeriod(v.Int); err != nil {
			return fail(StatusInvalidArgument, "write", rid, err)
		}
		return nil
	case SMSTxCounter, SMSRxCounter, TxKilobytes, RxKilobytes,
		MaxMessageSize, AvgMessageSize, StartCollection, StopCollection:
		return fail(StatusMethodNotAllowed, "write", rid, nil)
	}
	return fail(StatusNotFound, "write", rid, nil)
}

// Execute runs the start or stop action.
//
// Executing start on an open window re-arms it and the bytes counted so far
// are lost. Executing stop while idle is a bad request.
func (o *Object) Execute(rid ResourceID) error {
	switch rid {
	case StartCollection:
		if err := o.state.Start(o.counters); err != nil {
			return fail(StatusInternal, "execute", rid, err)
		}
		return nil
	case StopCollection:
		err := o.state.Stop(o.counters)
		if errors.Is(err, stats.ErrNotCollecting) {
			return fail(StatusBadRequest, "execute", rid, err)
		}
		if err != nil {
			return fail(StatusInternal, "execute", rid, err)
		}
		return nil
	case SMSTxCounter, SMSRxCounter, TxKilobytes, RxKilobytes,
		MaxMessageSize, AvgMessageSize, CollectionPeriod:
		return fail(StatusMethodNotAllowed, "execute", rid, nil)
	}
	return fail(StatusNotFound, "execute", rid, nil)
}

// InstanceReset returns the instance to its freshly created state.
func (o *Object) InstanceReset() error {
	o.state.Reset()
	return nil
}
