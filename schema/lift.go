package schema

import (
	"fmt"
	"sort"
	"strconv"
)

// ConflictPolicy selects how the lifter resolves two tuple variants deriving
// the same extraction name within a single run.
type ConflictPolicy int

const (
	// ConflictDrop removes tuple variants flagged drop-on-conflict before
	// lifting. Targets that cannot distinguish such variants from another
	// alternative use this policy.
	ConflictDrop ConflictPolicy = iota

	// ConflictAppendSuffix retries colliding extraction names with numeric
	// suffixes 2, 3, … until unique.
	ConflictAppendSuffix
)

// String returns the policy name.
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictDrop:
		return "drop"
	case ConflictAppendSuffix:
		return "append-suffix"
	default:
		return "unknown"
	}
}

// Lift extracts named top-level schemas for tuple variants found inside
// top-level anyOf schemas, replacing each lifted variant with a reference to
// the new name. Targets with only limited anyOf support rely on this to fall
// into the all-reference rendering path.
//
// Only tuples with exactly one const discriminant are lifted; others stay
// inline and surface later as renderer errors. The extraction name is the
// parent name concatenated with the variant-name override, or with the
// discriminant literal when no override is given. The reference carries a
// display title that always uses the literal.
//
// Lift is a pure transform: the input Spec and its nodes are never mutated.
// Lifted schemas land in the same partition as their parent. A lifted name
// colliding with a pre-existing schema is always fatal, whatever the policy;
// it indicates a naming bug rather than a document ambiguity.
func Lift(spec *Spec, policy ConflictPolicy) (*Spec, error) {
	result := NewSpec()
	lifted := make(map[string]Node)
	liftedPartition := make(map[string]map[string]Node)

	for _, partition := range []struct {
		src map[string]Node
		dst map[string]Node
	}{
		{spec.Managed, result.Managed},
		{spec.Unmanaged, result.Unmanaged},
	} {
		for _, name := range sortedKeys(partition.src) {
			node := partition.src[name]
			anyOf, ok := node.(*AnyOf)
			if !ok {
				partition.dst[name] = node
				continue
			}
			rewritten, err := liftAnyOf(name, anyOf, policy, lifted, liftedPartition, partition.dst)
			if err != nil {
				return nil, err
			}
			partition.dst[name] = rewritten
		}
	}

	for name, node := range lifted {
		if _, exists := spec.Lookup(name); exists {
			return nil, fmt.Errorf("lift tuple variants: duplicate schema name %q", name)
		}
		liftedPartition[name][name] = node
	}
	return result, nil
}

// liftAnyOf rewrites one top-level anyOf, registering extracted tuples in
// lifted and recording which partition each extraction belongs to.
func liftAnyOf(parent string, anyOf *AnyOf, policy ConflictPolicy, lifted map[string]Node, liftedPartition map[string]map[string]Node, dst map[string]Node) (*AnyOf, error) {
	members := make([]Node, 0, len(anyOf.Members))
	for _, member := range anyOf.Members {
		tuple, ok := member.(*ArrayTuple)
		if !ok {
			members = append(members, member)
			continue
		}
		if policy == ConflictDrop && tuple.DropOnConflict {
			continue
		}
		literal, ok := tupleDiscriminant(tuple)
		if !ok {
			// No single const discriminant; leave the tuple inline.
			members = append(members, tuple)
			continue
		}

		displayTitle := parent + literal
		name := displayTitle
		if tuple.VariantName != "" {
			name = parent + tuple.VariantName
		}
		if policy == ConflictAppendSuffix {
			base := name
			for suffix := 2; ; suffix++ {
				if _, taken := lifted[name]; !taken {
					break
				}
				name = base + strconv.Itoa(suffix)
			}
		}
		if _, taken := lifted[name]; taken {
			return nil, fmt.Errorf("lift tuple variants: duplicate schema name %q", name)
		}
		lifted[name] = tuple
		liftedPartition[name] = dst
		members = append(members, &Ref{Meta: Meta{Title: displayTitle}, Target: name})
	}
	return &AnyOf{Meta: anyOf.Meta, Members: members}, nil
}

// tupleDiscriminant returns the tuple's single const literal, or ok=false
// when the tuple has zero or several const elements.
func tupleDiscriminant(tuple *ArrayTuple) (string, bool) {
	var literal string
	count := 0
	for _, item := range tuple.PrefixItems {
		if c, ok := item.(*Const); ok {
			literal = c.Value
			count++
		}
	}
	if count != 1 {
		return "", false
	}
	return literal, true
}

func sortedKeys(m map[string]Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
