// Package dm implements the Connectivity Statistics data-model object: a
// single instance with a fixed catalogue of nine resources that can be read,
// written, executed and reset.
package dm

import (
	"fmt"
	"strconv"
)

// ObjectID is the registered identifier of the Connectivity Statistics object.
const ObjectID uint16 = 7

// InstanceID is the only instance the object ever has.
const InstanceID uint16 = 0

// ResourceID enumerates the object's resources.
type ResourceID uint16

const (
	SMSTxCounter     ResourceID = 0
	SMSRxCounter     ResourceID = 1
	TxKilobytes      ResourceID = 2
	RxKilobytes      ResourceID = 3
	MaxMessageSize   ResourceID = 4
	AvgMessageSize   ResourceID = 5
	StartCollection  ResourceID = 6
	StopCollection   ResourceID = 7
	CollectionPeriod ResourceID = 8

	numResources = 9
)

// Access is a bit set of permitted operations.
type Access uint8

const (
	AccessRead Access = 1 << iota
	AccessWrite
	AccessExecute
)

func (a Access) String() string {
	s := ""
	if a&AccessRead != 0 {
		s += "R"
	}
	if a&AccessWrite != 0 {
		s += "W"
	}
	if a&AccessExecute != 0 {
		s += "E"
	}
	return s
}

// MarshalText renders the access set as its letters, e.g. "RW".
func (a Access) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses the letters written by MarshalText.
func (a *Access) UnmarshalText(b []byte) error {
	var v Access
	for _, c := range string(b) {
		switch c {
		case 'R':
			v |= AccessRead
		case 'W':
			v |= AccessWrite
		case 'E':
			v |= AccessExecute
		default:
			return fmt.Errorf("unknown access %q", c)
		}
	}
	*a = v
	return nil
}

// Resource describes one catalogue entry.
type Resource struct {
	ID     ResourceID `json:"id"`
	Name   string     `json:"name"`
	Access Access     `json:"access"`
	Type   ValueType  `json:"type,omitempty"`
}

var catalogue = [numResources]Resource{
	SMSTxCounter:     {SMSTxCounter, "sms-tx-counter", AccessRead, TypeInt32},
	SMSRxCounter:     {SMSRxCounter, "sms-rx-counter", AccessRead, TypeInt32},
	TxKilobytes:      {TxKilobytes, "tx-kilobytes", AccessRead, TypeInt64},
	RxKilobytes:      {RxKilobytes, "rx-kilobytes", AccessRead, TypeInt64},
	MaxMessageSize:   {MaxMessageSize, "max-message-size", AccessRead, TypeInt32},
	AvgMessageSize:   {AvgMessageSize, "avg-message-size", AccessRead, TypeInt32},
	StartCollection:  {StartCollection, "start", AccessExecute, TypeNone},
	StopCollection:   {StopCollection, "stop", AccessExecute, TypeNone},
	CollectionPeriod: {CollectionPeriod, "collection-period", AccessRead | AccessWrite, TypeInt64},
}

// Valid reports whether rid is in the catalogue.
func (rid ResourceID) Valid() bool {
	return rid < numResources
}

func (rid ResourceID) String() string {
	if !rid.Valid() {
		return "resource(" + strconv.Itoa(int(rid)) + ")"
	}
	return catalogue[rid].Name
}

// ParseResourceID parses a decimal resource identifier. Out-of-catalogue ids
// are returned as ErrNotFound.
func ParseResourceID(s string) (ResourceID, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, &Error{Status: StatusNotFound, Msg: fmt.Sprintf("resource %q", s)}
	}
	rid := ResourceID(n)
	if !rid.Valid() {
		return rid, &Error{Status: StatusNotFound, Op: "parse", Resource: rid}
	}
	return rid, nil
}

// Describe returns the catalogue entry for rid.
func Describe(rid ResourceID) (Resource, bool) {
	if !rid.Valid() {
		return Resource{}, false
	}
	return catalogue[rid], true
}

// SupportedResources lists the catalogue in id order.
func SupportedResources() []Resource {
	out := make([]Resource, numResources)
	copy(out, catalogue[:])
	return out
}
