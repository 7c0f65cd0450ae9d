// Package retsu is the storage and query core of a data-oriented Entity
// Component System for large agent simulations.
//
// Entities are plain uint32 identities. Their state lives column-wise: one
// typed, fixed-capacity Column per component, shared by every View that
// selects slots of it through a shared Indices vector. Queries intersect the
// live entity sets of several components and return one aligned Indices per
// component. Element-wise arithmetic and comparisons run directly on views.
package retsu

import "math"

// EntityID is the identity of an entity. Identities are allocated from a
// monotonic counter and recycled, first in first out, after a despawn.
type EntityID uint32

// MaxEntityID is the largest identity the counter hands out.
const MaxEntityID = math.MaxUint32
