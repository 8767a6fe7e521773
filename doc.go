// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package traits provides field-based capability delegation in Go.
//
// An object declares, at registration time, that it delegates responsibility
// for an abstract capability — an interface in the design sense, identified
// by a [Tag] — to one of its own fields, recursively, until a concrete
// implementor is found. On top of the same recursive walk the package builds
// an implementation resolver, a permission resolver, and a three-phase
// effect protocol that lets every level of a delegation chain veto and
// reconcile mutations without the inner levels knowing the wrappers exist.
//
// # Design Philosophy
//
// traits provides:
//   - A minimal open registry keyed by (capability type, object type),
//     populated at init time and read-only afterwards
//   - Phantom marker types for zero-state capability tags and effect kinds
//   - Structural interface assertion for per-kind effect dispatch
//
// # Capability Tags
//
// A tag is a named struct embedding [Capability]; identity is the tag's
// type, never a value:
//
//	type GraphOps struct{ traits.Capability }
//
// # Delegation
//
// [DelegateField] registers that an object kind forwards a capability to one
// of its fields. Go has no by-name field access without reflection, so the
// registration carries an explicit typed accessor:
//
//	traits.DelegateField[GraphOps, Weighted]("Inner", func(w Weighted) any {
//	    return w.Inner
//	})
//
// [ResolveDelegation] returns the [Delegation] verdict for a (tag, object)
// pair; with no registered rule the verdict defaults to [NoDelegation].
// [DelegateOf] fetches the delegate itself, and [Chain] returns the whole
// chain down to the terminal object.
//
// # Implementation Resolution
//
// [ResolveImplementation] walks the chain for an explicit marker registered
// with [DeclareImplements] (or [DeclareImplementation]). The explicit marker
// takes precedence over delegation; a NoDelegation boundary with no marker
// resolves to [DoesNotImplement].
//
// # Permission Resolution
//
// Operations are defined with [DefineOp], which records the
// operation→capability association. [CheckPermission] walks the same chain
// with the opposite default: a NoDelegation boundary with no restriction
// resolves to [Allowed] — absence of a restriction grants permission,
// whereas absence of an implementation marker denies implementation.
// [AssertPermission] converts NotAllowed into a *[PermissionError].
// Restrictions are registered with [RestrictOp] or [ForbidOp].
//
// # Effect Protocol
//
// An [Effect] is an immutable description of one intended mutation, tied to
// its capability via the [EffectOf] phantom. Object kinds opt into the three
// extension points by implementing [EffectChecker], [EffectApplier] and
// [EffectHandler]. [Apply] runs the caller-side protocol in exact order:
//
//  1. [CheckEffect] — every level with a declared constraint must approve;
//     a veto aborts with a *[EffectError] and no state change.
//  2. [ApplyEffect] — the first level owning the state performs the change.
//  3. [HandleEffect] — every wrapping level repairs derived state.
//
// The walks run outer to inner and the order is deterministic. A wrapper can
// both veto a mutation (phase 1) and self-repair afterwards (phase 3)
// without the delegated implementation knowing the wrapper exists.
//
// # Diagnostics
//
// Wherever resolution silently falls back to a default, the package notes a
// [Fallback]. The default sink is a no-op; [SetFallbackObserver] installs a
// real one — [LogFallbacks] for slog, [CountFallbacks] for prometheus.
//
// # Errors
//
//   - *[ConfigurationError]: delegate requested from a NoDelegation object,
//     or no applier anywhere in an effect's chain
//   - *[PermissionError]: asserted operation resolved to NotAllowed
//   - *[EffectError]: phase-1 veto; wraps the checker's reason
//   - *[CycleError]: chain deeper than the [SetMaxDepth] limit
//
// # Concurrency
//
// Register before first resolution. Resolution is synchronous, non-blocking
// and side-effect-free; the only mutation is the consumer's phase-2 mutator,
// and concurrent mutation of one object graph needs external mutual
// exclusion supplied by the consumer.
//
// # Example
//
//	type GraphOps struct{ traits.Capability }
//
//	type RemoveEdge struct {
//	    traits.EffectOf[GraphOps]
//	    U, V int
//	}
//
//	traits.DelegateField[GraphOps, *Weighted]("Inner", func(w *Weighted) any {
//	    return w.Inner
//	})
//
//	err := traits.Apply(weighted, RemoveEdge{U: 1, V: 2})
//	// Weighted.CheckEffect may veto; Graph.ApplyEffect mutates;
//	// Weighted.HandleEffect drops the stale weight entry.
package traits
