package schema

import "strings"

// Descriptor rendering, one line per descriptor with four-space indentation:
//
//	structure timeStamp
//	    long secondsPastEpoch
//	    int nanoSeconds
//	    int userTag

const indentStep = "    "

func pad(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString(indentStep)
	}
}

func (s *Scalar) write(sb *strings.Builder, indent int) {
	pad(sb, indent)
	sb.WriteString(s.typ.String())
	sb.WriteByte(' ')
	sb.WriteString(s.name)
}

func (s *Scalar) String() string {
	sb := &strings.Builder{}
	s.write(sb, 0)
	return sb.String()
}

func (s *ScalarArray) write(sb *strings.Builder, indent int) {
	pad(sb, indent)
	sb.WriteString(s.elem.String())
	sb.WriteString("[] ")
	sb.WriteString(s.name)
}

func (s *ScalarArray) String() string {
	sb := &strings.Builder{}
	s.write(sb, 0)
	return sb.String()
}

func (s *Structure) write(sb *strings.Builder, indent int) {
	pad(sb, indent)
	sb.WriteString("structure ")
	sb.WriteString(s.name)
	for _, f := range s.fields {
		sb.WriteByte('\n')
		f.write(sb, indent+1)
	}
}

func (s *Structure) String() string {
	sb := &strings.Builder{}
	s.write(sb, 0)
	return sb.String()
}

func (s *StructureArray) write(sb *strings.Builder, indent int) {
	pad(sb, indent)
	sb.WriteString("structure[] ")
	sb.WriteString(s.name)
	for _, f := range s.elem.fields {
		sb.WriteByte('\n')
		f.write(sb, indent+1)
	}
}

func (s *StructureArray) String() string {
	sb := &strings.Builder{}
	s.write(sb, 0)
	return sb.String()
}
