// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import (
	"fmt"
	"reflect"
)

// Error taxonomy. All failures surface to the immediate caller; the library
// performs no retries — resolution is deterministic and side-effect-free, so
// retrying without changing registrations accomplishes nothing.

// ConfigurationError reports a contract violation in how delegation was
// registered or used: a delegate was requested from a NoDelegation object,
// or an effect reached the end of a chain with no authoritative applier.
type ConfigurationError struct {
	Capability reflect.Type
	Object     reflect.Type
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("traits: configuration error for %s on %s: %s", e.Capability, e.Object, e.Reason)
}

// PermissionError reports an operation attempted where permission
// resolution returned NotAllowed. It is produced by [AssertPermission];
// [CheckPermission] instead returns the verdict for the caller to branch on.
type PermissionError struct {
	Op     Op
	Object reflect.Type
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("traits: operation %s not allowed on %s", e.Op, e.Object)
}

// EffectError reports a phase-1 rejection of the effect protocol: some
// level's CheckEffect vetoed the mutation. The mutation did not proceed and
// no state change is observable.
type EffectError struct {
	Effect reflect.Type
	Object reflect.Type
	Reason error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("traits: effect %s rejected by %s: %v", e.Effect, e.Object, e.Reason)
}

// Unwrap returns the checker's rejection reason.
func (e *EffectError) Unwrap() error { return e.Reason }

// CycleError reports a delegation chain deeper than the configured limit,
// which almost always means the chain is cyclic. Resolution does not detect
// cycles structurally; the depth guard converts non-termination into this
// reported error. See [SetMaxDepth].
type CycleError struct {
	Capability reflect.Type
	Object     reflect.Type
	Depth      int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("traits: delegation chain for %s exceeded depth %d at %s (cycle?)", e.Capability, e.Depth, e.Object)
}
