package nbt

import "fmt"

// Compound member operations. The members live in a single ordered
// associative container, so name lookup and serialization order can
// never drift apart.

// Get returns the member with the given name, or nil if the name is
// absent or the tag is not a Compound.
func (t *Tag) Get(name string) *Tag {
	if t == nil || t.typ != TypeCompound {
		return nil
	}
	child, _ := t.members.Get(name)
	return child
}

// Set inserts or replaces a member. Replacing an existing name keeps
// its position in serialization order; a new name is appended. The
// child is owned by the compound afterwards and carries the given
// name.
func (t *Tag) Set(name string, child *Tag) error {
	if t == nil || t.typ != TypeCompound {
		return fmt.Errorf("nbt: Set on %s tag", t.Type())
	}
	if child == nil {
		return &InvariantViolationError{Reason: fmt.Sprintf("compound member %q is nil", name)}
	}
	if child.typ == TypeEnd {
		return &InvariantViolationError{Reason: fmt.Sprintf("compound member %q cannot be an End tag", name)}
	}
	if len(name) > MaxStringLen {
		return &ValueRangeError{Type: TypeString, Value: int64(len(name)), Min: 0, Max: MaxStringLen}
	}
	child.name = name
	t.members.Set(name, child)
	return nil
}

// Remove deletes the member with the given name. It reports whether
// the name was present.
func (t *Tag) Remove(name string) bool {
	if t == nil || t.typ != TypeCompound {
		return false
	}
	_, present := t.members.Delete(name)
	return present
}

// Names returns the member names in insertion order.
func (t *Tag) Names() []string {
	if t == nil || t.typ != TypeCompound {
		return nil
	}
	names := make([]string, 0, t.members.Len())
	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Members returns the member tags in insertion order.
func (t *Tag) Members() []*Tag {
	if t == nil || t.typ != TypeCompound {
		return nil
	}
	members := make([]*Tag, 0, t.members.Len())
	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		members = append(members, pair.Value)
	}
	return members
}
