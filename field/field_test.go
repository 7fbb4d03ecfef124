package field

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		desc    string
		name    string
		want    ScalarType
		wantErr bool
	}{
		{desc: "boolean", name: "boolean", want: STBool},
		{desc: "signed 64 bit", name: "long", want: STInt64},
		{desc: "unsigned 16 bit", name: "ushort", want: STUint16},
		{desc: "double", name: "double", want: STFloat64},
		{desc: "string", name: "string", want: STString},
		{desc: "unknown name", name: "complex", wantErr: true},
		{desc: "empty name", name: "", wantErr: true},
	}

	for _, test := range tests {
		got, err := FromName(test.name)
		switch {
		case err == nil && test.wantErr:
			t.Errorf("TestFromName(%s): got err == nil, want err != nil", test.desc)
			continue
		case err != nil && !test.wantErr:
			t.Errorf("TestFromName(%s): got err == %s, want err == nil", test.desc, err)
			continue
		case err != nil:
			continue
		}
		if got != test.want {
			t.Errorf("TestFromName(%s): got %v, want %v", test.desc, got, test.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	type row struct {
		Integer   bool
		Numeric   bool
		Primitive bool
	}
	got := map[string]row{}
	for st := STBool; st <= STString; st++ {
		got[st.String()] = row{IsInteger(st), IsNumeric(st), IsPrimitive(st)}
	}

	want := map[string]row{
		"boolean": {false, false, true},
		"byte":    {true, true, true},
		"short":   {true, true, true},
		"int":     {true, true, true},
		"long":    {true, true, true},
		"ubyte":   {true, true, true},
		"ushort":  {true, true, true},
		"uint":    {true, true, true},
		"ulong":   {true, true, true},
		"float":   {false, true, true},
		"double":  {false, true, true},
		"string":  {false, false, false},
	}

	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("TestPredicates: -want/+got:\n%s", diff)
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		st   ScalarType
		want int
	}{
		{STBool, 1},
		{STInt8, 1},
		{STUint8, 1},
		{STInt16, 2},
		{STUint16, 2},
		{STInt32, 4},
		{STUint32, 4},
		{STFloat32, 4},
		{STInt64, 8},
		{STUint64, 8},
		{STFloat64, 8},
	}
	for _, test := range tests {
		if got := Size(test.st); got != test.want {
			t.Errorf("TestSize(%v): got %d, want %d", test.st, got, test.want)
		}
	}
}

func TestSizeStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("TestSizeStringPanics: Size(STString) did not panic")
		}
	}()
	Size(STString)
}
