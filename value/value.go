// Package value materializes mutable value trees from schema descriptors and
// implements the binary codec over them. Every node in a tree carries two
// integers assigned at construction by a pre-order walk: Offset, the node's
// own index, and NextOffset, the exclusive upper bound of its subtree's index
// range. The pair is the addressing scheme used by the change bitset. Trees
// are not internally synchronized; callers that share a tree across
// goroutines apply their own locking.
package value

import (
	"fmt"
	"strings"

	"github.com/bearlytools/talon/schema"
	"github.com/bearlytools/talon/talonerr"
	"github.com/bearlytools/talon/wire"
)

// Value is a node in a value tree. The implementations are Scalar[T], Bool,
// String, Array[T], BoolArray, StringArray, Structure and StructureArray; the
// set is closed.
type Value interface {
	// Descriptor returns the schema descriptor this node conforms to.
	Descriptor() schema.Field
	// Name returns the descriptor's field name.
	Name() string
	// Offset returns the node's pre-order index within its tree.
	Offset() int
	// NextOffset returns the exclusive end of the node's subtree index range.
	// For a leaf this is Offset()+1.
	NextOffset() int
	// Parent returns the containing node, or nil at the root.
	Parent() Value
	// Root returns the top of the tree this node belongs to.
	Root() Value
	// Immutable reports whether the node has been frozen.
	Immutable() bool
	// MarkImmutable freezes the node and its whole subtree. Every later
	// mutation fails with an ImmutableViolation error.
	MarkImmutable()
	// SetNotify installs the value-changed hook. It is consulted on the root
	// of the tree; a put anywhere in the tree invokes the root's hook with
	// the node that changed.
	SetNotify(fn func(Value))
	// SetAux attaches auxiliary metadata to the node.
	SetAux(key, val string)
	// Aux returns auxiliary metadata attached with SetAux.
	Aux(key string) (string, bool)
	// Serialize encodes the node into buf, using ctl for flow control.
	Serialize(buf *wire.ByteBuffer, ctl wire.SerializeControl) error
	// Deserialize decodes the node from buf, using ctl for flow control. The
	// node's previous content is replaced only after every required byte has
	// been read.
	Deserialize(buf *wire.ByteBuffer, ctl wire.DeserializeControl) error

	number(offset int) int
	setParent(p Value)
	setDesc(d schema.Field)
	clone() Value
}

// node carries the bookkeeping common to every value kind. Each concrete kind
// embeds it and stores itself in self so the promoted methods can hand out
// the full interface value.
type node struct {
	desc       schema.Field
	self       Value
	parent     Value
	offset     int
	nextOffset int
	immutable  bool
	notify     func(Value)
	aux        map[string]string
}

func (n *node) init(desc schema.Field, self Value) {
	n.desc = desc
	n.self = self
}

// Descriptor implements Value.
func (n *node) Descriptor() schema.Field { return n.desc }

// Name implements Value.
func (n *node) Name() string { return n.desc.Name() }

// Offset implements Value.
func (n *node) Offset() int { return n.offset }

// NextOffset implements Value.
func (n *node) NextOffset() int { return n.nextOffset }

// Parent implements Value.
func (n *node) Parent() Value { return n.parent }

// Root implements Value.
func (n *node) Root() Value {
	v := n.self
	for v.Parent() != nil {
		v = v.Parent()
	}
	return v
}

// Immutable implements Value.
func (n *node) Immutable() bool { return n.immutable }

// MarkImmutable implements Value. Container kinds shadow this to recurse.
func (n *node) MarkImmutable() { n.immutable = true }

// SetNotify implements Value.
func (n *node) SetNotify(fn func(Value)) { n.notify = fn }

// SetAux implements Value.
func (n *node) SetAux(key, val string) {
	if n.aux == nil {
		n.aux = map[string]string{}
	}
	n.aux[key] = val
}

// Aux implements Value.
func (n *node) Aux(key string) (string, bool) {
	v, ok := n.aux[key]
	return v, ok
}

// number assigns the leaf numbering; container kinds shadow it.
func (n *node) number(offset int) int {
	n.offset = offset
	n.nextOffset = offset + 1
	return n.nextOffset
}

func (n *node) setParent(p Value) { n.parent = p }

func (n *node) setDesc(d schema.Field) { n.desc = d }

// changed fires the tree's value-changed hook, installed on the root.
func (n *node) changed() {
	v := n.self
	for v.Parent() != nil {
		v = v.Parent()
	}
	if r, ok := v.(interface{ hook() func(Value) }); ok {
		if fn := r.hook(); fn != nil {
			fn(n.self)
		}
	}
}

func (n *node) hook() func(Value) { return n.notify }

// frozen returns the error every mutation of an immutable node reports.
func (n *node) frozen() error {
	return talonerr.E(talonerr.CatImmutableViolation, "cannot modify field %q after MarkImmutable", n.desc.Name())
}

// cloneAux copies the auxiliary metadata into a freshly built clone.
func (n *node) cloneAux(from *node) {
	if from.aux == nil {
		return
	}
	n.aux = make(map[string]string, len(from.aux))
	for k, v := range from.aux {
		n.aux[k] = v
	}
}

// Create instantiates a default-valued tree conforming to desc and assigns
// the pre-order offset numbering. It panics on a corrupted descriptor, which
// cannot occur for descriptors built by the schema package.
func Create(desc schema.Field) Value {
	v := build(desc)
	v.number(0)
	return v
}

func build(desc schema.Field) Value {
	switch t := desc.(type) {
	case *schema.Scalar:
		return buildScalar(t)
	case *schema.ScalarArray:
		return buildArray(t)
	case *schema.Structure:
		s := &Structure{}
		s.init(t, s)
		for _, f := range t.Fields() {
			c := build(f)
			c.setParent(s)
			s.children = append(s.children, c)
		}
		return s
	case *schema.StructureArray:
		sa := &StructureArray{elem: t.Structure()}
		sa.init(t, sa)
		return sa
	}
	panic(fmt.Sprintf("bug: build() received a descriptor kind it does not know (%T)", desc))
}

// Clone deep-copies v into a detached tree, auxiliary metadata included, and
// renumbers it from offset zero.
func Clone(v Value) Value {
	c := v.clone()
	c.number(0)
	return c
}

// CreateStructure synthesizes an anonymous structure from already-built
// values: it builds a descriptor whose children are the values' descriptors
// renamed to names, adopts the values as children, and renumbers the tree.
// The values must be detached roots.
func CreateStructure(names []string, values []Value) (*Structure, error) {
	if len(names) != len(values) {
		return nil, talonerr.E(talonerr.CatInvalidArgument, "cannot create structure from %d names and %d values", len(names), len(values))
	}
	desc := schema.NewStructure("")
	s := &Structure{}
	for i, v := range values {
		if v.Parent() != nil {
			return nil, talonerr.E(talonerr.CatInvalidArgument, "cannot adopt value %q: it already has a parent", names[i])
		}
		desc.AppendField(schema.Rename(names[i], v.Descriptor()))
		v.setParent(s)
		s.children = append(s.children, v)
	}
	s.init(desc, s)
	// Adopted values keep their storage but take on the renamed descriptors.
	for i, v := range s.children {
		v.setDesc(desc.Fields()[i])
	}
	s.number(0)
	return s, nil
}

// Sub resolves a dotted path such as "timeStamp.secondsPastEpoch" against a
// structure value. It returns nil if any path component is missing or lands
// on a non-structure before the path ends.
func Sub(v Value, path string) Value {
	cur := v
	for _, part := range strings.Split(path, ".") {
		s, ok := cur.(*Structure)
		if !ok {
			return nil
		}
		cur = s.Field(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}
