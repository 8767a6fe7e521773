// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import "reflect"

// Effect is the interface for described, not-yet-applied mutations.
// An effect is an immutable value carrying whatever data the mutation needs
// ("add vertex v", "remove edge e"); the capability it belongs to is encoded
// in the type via the [EffectOf] phantom, so the protocol walks know which
// delegation relation to follow. Any consumer may add new effect kinds
// without touching this package.
type Effect interface {
	EffectCapability() reflect.Type
}

// EffectOf is an embeddable zero-size type that ties an effect kind to its
// capability tag. Embed EffectOf[T] in an effect struct to satisfy [Effect].
//
// Example:
//
//	type RemoveEdge struct {
//	    traits.EffectOf[GraphOps]
//	    U, V int
//	}
type EffectOf[T Tag] struct{}

// EffectCapability implements [Effect] with the tag type T.
func (EffectOf[T]) EffectCapability() reflect.Type { return tagOf[T]() }

// EffectChecker is the phase-1 extension point of the effect protocol.
// An object kind that declares a constraint on incoming effects implements
// CheckEffect: return nil to approve, an error to veto. CheckEffect must not
// mutate anything — the protocol guarantees no state change when any level
// vetoes, and that guarantee holds only if checks are side-effect-free.
type EffectChecker interface {
	CheckEffect(Effect) error
}

// EffectApplier is the phase-2 extension point: the authoritative mutator
// for an effect. Exactly the levels that own the mutated state implement it;
// wrappers that merely observe or veto do not.
type EffectApplier interface {
	ApplyEffect(Effect) error
}

// EffectHandler is the phase-3 extension point: post-mutation
// reconciliation. A wrapper that maintains derived state (an index, a cache,
// a weight map) implements HandleEffect to repair it after the mutation.
// HandleEffect should be idempotent: reconciling an already-consistent
// object must be a no-op.
type EffectHandler interface {
	HandleEffect(Effect) error
}

// CheckEffect runs phase 1 of the effect protocol over the full delegation
// chain, outer to inner: at every level the object's CheckEffect is invoked
// if declared, then the walk follows the delegation verdict for the effect's
// capability until a NoDelegation boundary. The first veto aborts the walk
// and is returned wrapped in a *EffectError; nil means every level with a
// declared constraint approved.
func CheckEffect(object any, eff Effect) error {
	capability := eff.EffectCapability()
	for depth := 0; ; depth++ {
		if depth >= depthLimit() {
			return &CycleError{Capability: capability, Object: kindOf(object), Depth: depth}
		}
		if c, ok := object.(EffectChecker); ok {
			if err := c.CheckEffect(eff); err != nil {
				return &EffectError{Effect: kindOf(eff), Object: kindOf(object), Reason: err}
			}
		} else {
			noteFallback(Fallback{Site: SiteEffectCheck, Capability: capability, Object: kindOf(object), Depth: depth})
		}
		d := resolveDelegation(capability, object)
		if !d.delegates {
			return nil
		}
		object = d.get(object)
	}
}

// ApplyEffect runs phase 2: it walks the chain outer to inner and invokes
// the first level implementing [EffectApplier]. Unlike check and handle,
// apply has no per-level default — some object in the chain must own the
// mutation, and a chain with no applier is a *ConfigurationError.
func ApplyEffect(object any, eff Effect) error {
	capability := eff.EffectCapability()
	for depth := 0; ; depth++ {
		if depth >= depthLimit() {
			return &CycleError{Capability: capability, Object: kindOf(object), Depth: depth}
		}
		if a, ok := object.(EffectApplier); ok {
			return a.ApplyEffect(eff)
		}
		d := resolveDelegation(capability, object)
		if !d.delegates {
			return &ConfigurationError{
				Capability: capability,
				Object:     kindOf(object),
				Reason:     "no object in the delegation chain applies effect " + kindOf(eff).String(),
			}
		}
		object = d.get(object)
	}
}

// HandleEffect runs phase 3 over the full chain, outer to inner: every level
// declaring [EffectHandler] gets a chance to repair derived state the
// mutation may have invalidated. The order is deterministic — outermost
// wrapper first — and consistent across runs with the same chain shape.
func HandleEffect(object any, eff Effect) error {
	capability := eff.EffectCapability()
	for depth := 0; ; depth++ {
		if depth >= depthLimit() {
			return &CycleError{Capability: capability, Object: kindOf(object), Depth: depth}
		}
		if h, ok := object.(EffectHandler); ok {
			if err := h.HandleEffect(eff); err != nil {
				return err
			}
		} else {
			noteFallback(Fallback{Site: SiteEffectHandle, Capability: capability, Object: kindOf(object), Depth: depth})
		}
		d := resolveDelegation(capability, object)
		if !d.delegates {
			return nil
		}
		object = d.get(object)
	}
}

// Apply runs the full three-phase mutation protocol on root:
//
//  1. CheckEffect across the chain — every declared constraint must approve.
//  2. ApplyEffect — the authoritative mutator performs the state change.
//  3. HandleEffect across the chain — every wrapper repairs derived state.
//
// A phase-1 failure aborts with no state change; phases 2 and 3 never run.
// Phase ordering is exact: no reconciliation happens for a vetoed or failed
// mutation.
func Apply(root any, eff Effect) error {
	return ApplyWith(root, eff, func() error { return ApplyEffect(root, eff) })
}

// ApplyWith runs the three-phase protocol with a caller-supplied phase-2
// mutator, for operations whose core mutation is not expressed as an
// [EffectApplier] method. The ordering guarantees of [Apply] hold unchanged.
func ApplyWith(root any, eff Effect, mutate func() error) error {
	if err := CheckEffect(root, eff); err != nil {
		return err
	}
	if err := mutate(); err != nil {
		return err
	}
	return HandleEffect(root, eff)
}
