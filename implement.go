// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import (
	"reflect"
	"sync/atomic"
)

// Implementation is the verdict of implementation resolution.
type Implementation bool

// Implementation verdicts.
const (
	// Implements means some object in the delegation chain declared direct
	// responsibility for the capability.
	Implements Implementation = true

	// DoesNotImplement means the chain ended at a NoDelegation object with
	// no explicit implementation marker.
	DoesNotImplement Implementation = false
)

// String returns the verdict name.
func (v Implementation) String() string {
	if v == Implements {
		return "Implements"
	}
	return "DoesNotImplement"
}

// maxDepth bounds every recursive walk over a delegation chain, converting a
// cyclic chain into a *CycleError instead of unbounded recursion.
var maxDepth atomic.Int64

func init() { maxDepth.Store(100) }

// SetMaxDepth sets the delegation-chain depth limit. Chains deeper than n
// resolve to a *CycleError. Panics when n is not positive.
func SetMaxDepth(n int) {
	if n <= 0 {
		panic("traits: depth limit must be positive")
	}
	maxDepth.Store(int64(n))
}

func depthLimit() int {
	return int(maxDepth.Load())
}

// DeclareImplementation registers an explicit implementation marker for
// capability T on object kind O. The explicit marker takes precedence over
// any delegation rule for the same pair: resolution returns it without
// walking the chain.
//
// Marking DoesNotImplement is meaningful: it pins the verdict at this kind
// even when a delegate further down would report Implements.
func DeclareImplementation[T Tag, O any](v Implementation) {
	global.setImplementation(pairKey{capability: tagOf[T](), object: reflect.TypeFor[O]()}, v)
}

// DeclareImplements registers the Implements marker for (T, O).
func DeclareImplements[T Tag, O any]() {
	DeclareImplementation[T, O](Implements)
}

// ResolveImplementation reports whether some object in the delegation chain
// starting at object declares direct implementation of capability T.
//
// The walk checks the explicit marker first, then follows the delegation
// verdict: NoDelegation terminates with DoesNotImplement, DelegateToField
// recurses on the delegate. The only error is a *CycleError from the depth
// guard.
func ResolveImplementation[T Tag](object any) (Implementation, error) {
	return resolveImplementation(tagOf[T](), object, 0)
}

func resolveImplementation(capability reflect.Type, object any, depth int) (Implementation, error) {
	if depth >= depthLimit() {
		return DoesNotImplement, &CycleError{Capability: capability, Object: kindOf(object), Depth: depth}
	}
	if v, ok := global.implementation(capability, kindOf(object)); ok {
		return v, nil
	}
	d := resolveDelegation(capability, object)
	if !d.delegates {
		noteFallback(Fallback{Site: SiteImplementation, Capability: capability, Object: kindOf(object), Depth: depth})
		return DoesNotImplement, nil
	}
	return resolveImplementation(capability, d.get(object), depth+1)
}
