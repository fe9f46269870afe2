// Package filter provides scene filter rules and their evaluation.
package filter

import (
	"fmt"
	"strings"
)

// Kind is the class of item a rule tests.
type Kind int

const (
	KindTexture     Kind = iota // material shader name
	KindEntityClass             // entity class, e.g. "func_static"
	KindObject                  // primitive type, "brush" or "patch"
	KindSpawnarg                // value of an entity spawnarg
)

// Persisted names of the rule kinds.
const (
	TypeTexture     = "texture"
	TypeEntityClass = "entityclass"
	TypeObject      = "object"
	TypeSpawnarg    = "entitykeyvalue"
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return TypeTexture
	case KindEntityClass:
		return TypeEntityClass
	case KindObject:
		return TypeObject
	case KindSpawnarg:
		return TypeSpawnarg
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a persisted type name into a Kind. Matching is
// case-insensitive; "spawnarg" is accepted as an alias of "entitykeyvalue".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case TypeTexture:
		return KindTexture, nil
	case TypeEntityClass:
		return KindEntityClass, nil
	case TypeObject:
		return KindObject, nil
	case TypeSpawnarg, "spawnarg":
		return KindSpawnarg, nil
	}
	return 0, fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, s)
}

// PrimitiveType is a class of scene primitive.
type PrimitiveType int

const (
	PrimitiveBrush PrimitiveType = iota
	PrimitivePatch
)

// Object names matched by KindObject rules.
const (
	ObjectBrush = "brush"
	ObjectPatch = "patch"
)

func (p PrimitiveType) String() string {
	if p == PrimitivePatch {
		return ObjectPatch
	}
	return ObjectBrush
}

// Query selects what a rule matches. It is implemented by TextureQuery,
// EntityClassQuery, PrimitiveQuery and SpawnArgQuery only.
type Query interface {
	kind() Kind
}

// TextureQuery matches material shader names.
type TextureQuery struct{ Match string }

// EntityClassQuery matches entity class names.
type EntityClassQuery struct{ Match string }

// PrimitiveQuery matches one type of primitive.
type PrimitiveQuery struct{ Type PrimitiveType }

// SpawnArgQuery matches the value of the spawnarg Key.
type SpawnArgQuery struct {
	Key        string
	ValueMatch string
}

func (TextureQuery) kind() Kind     { return KindTexture }
func (EntityClassQuery) kind() Kind { return KindEntityClass }
func (PrimitiveQuery) kind() Kind   { return KindObject }
func (SpawnArgQuery) kind() Kind    { return KindSpawnarg }

// Entity is the view of a scene entity that rules are evaluated against.
type Entity interface {
	ClassName() string
	// KeyValue returns the spawnarg value for key, or "" when unset.
	KeyValue(key string) string
}
