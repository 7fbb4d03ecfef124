// Package standard builds the canonical structures control-system middleware
// exchanges: timestamps, alarms, and value records that bundle a datum with
// those annotations. Middleware layers and tests use these instead of
// hand-assembling the same shapes everywhere.
package standard

import (
	"fmt"

	"github.com/bearlytools/talon/field"
	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/talonerr"
)

func mustScalar(name string, st field.ScalarType) *schema.Scalar {
	s, err := schema.NewScalar(name, st)
	if err != nil {
		panic(fmt.Sprintf("bug: standard field %q failed to build: %s", name, err))
	}
	return s
}

// TimeStamp returns the descriptor of a timestamp annotation:
// secondsPastEpoch, nanoSeconds and a user tag.
func TimeStamp() *schema.Structure {
	return schema.NewStructure(
		"timeStamp",
		mustScalar("secondsPastEpoch", field.STInt64),
		mustScalar("nanoSeconds", field.STInt32),
		mustScalar("userTag", field.STInt32),
	)
}

// Alarm returns the descriptor of an alarm annotation: severity, status and a
// free-form message.
func Alarm() *schema.Structure {
	return schema.NewStructure(
		"alarm",
		mustScalar("severity", field.STInt32),
		mustScalar("status", field.STInt32),
		mustScalar("message", field.STString),
	)
}

// property returns the descriptor for a recognized annotation name.
func property(name string) (*schema.Structure, error) {
	switch name {
	case "timeStamp":
		return TimeStamp(), nil
	case "alarm":
		return Alarm(), nil
	}
	return nil, talonerr.E(talonerr.CatInvalidArgument, "%q is not a standard property", name)
}

// Scalar returns the descriptor of a record holding one scalar value plus the
// named annotations, in the order given. Recognized annotations are "alarm"
// and "timeStamp".
func Scalar(name string, st field.ScalarType, props ...string) (*schema.Structure, error) {
	v, err := schema.NewScalar("value", st)
	if err != nil {
		return nil, err
	}
	s := schema.NewStructure(name, v)
	for _, p := range props {
		d, err := property(p)
		if err != nil {
			return nil, err
		}
		s.AppendField(d)
	}
	return s, nil
}

// ScalarArray is Scalar for an array-valued record.
func ScalarArray(name string, elem field.ScalarType, props ...string) (*schema.Structure, error) {
	v, err := schema.NewScalarArray("value", elem)
	if err != nil {
		return nil, err
	}
	s := schema.NewStructure(name, v)
	for _, p := range props {
		d, err := property(p)
		if err != nil {
			return nil, err
		}
		s.AppendField(d)
	}
	return s, nil
}
