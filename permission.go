// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import "reflect"

// Permission is the verdict of permission resolution.
type Permission bool

// Permission verdicts.
const (
	// Allowed means the operation may run on the resolved terminal object.
	Allowed Permission = true

	// NotAllowed means a restriction along the delegation chain denied the
	// operation.
	NotAllowed Permission = false
)

// String returns the verdict name.
func (v Permission) String() string {
	if v == Allowed {
		return "Allowed"
	}
	return "NotAllowed"
}

// Op identifies one capability-dependent operation. Ops are comparable
// values; identity is (capability, name). Build them with [DefineOp] so the
// operation→capability association is recorded at definition time.
type Op struct {
	capability reflect.Type
	name       string
}

// DefineOp defines an operation belonging to capability T.
// The returned Op is the operation's identity for permission checks, and
// carries the static association consulted by CapabilityOf.
func DefineOp[T Tag](name string) Op {
	if name == "" {
		panic("traits: empty operation name")
	}
	return Op{capability: tagOf[T](), name: name}
}

// Name returns the operation's declared name.
func (op Op) Name() string { return op.name }

// Capability returns the capability tag type the operation belongs to.
func (op Op) Capability() reflect.Type { return op.capability }

// String returns "capability.name".
func (op Op) String() string {
	if op.capability == nil {
		return op.name
	}
	return op.capability.Name() + "." + op.name
}

// CapabilityOf returns the capability tag type an operation belongs to.
func CapabilityOf(op Op) reflect.Type {
	return op.capability
}

// RestrictOp registers a permission restriction for op on object kind O.
// During resolution the restriction takes precedence at its level: its
// verdict is returned without walking further down the chain.
func RestrictOp[O any](op Op, check func(O) Permission) {
	if check == nil {
		panic("traits: nil permission check")
	}
	global.setRestriction(opKey{op: op, object: reflect.TypeFor[O]()}, func(object any) Permission {
		return check(object.(O))
	})
}

// ForbidOp registers an unconditional NotAllowed restriction for op on
// object kind O.
func ForbidOp[O any](op Op) {
	RestrictOp[O](op, func(O) Permission { return NotAllowed })
}

// CheckPermission reports whether op is currently allowed on the object.
//
// The walk mirrors implementation resolution but with the opposite default:
// a registered restriction for (op, object kind) is consulted first; with
// none, NoDelegation terminates with Allowed (absence of an explicit
// restriction means permission is granted), and DelegateToField recurses on
// the delegate of op's capability. The only error is a *CycleError.
func CheckPermission(op Op, object any) (Permission, error) {
	return checkPermission(op, object, 0)
}

func checkPermission(op Op, object any, depth int) (Permission, error) {
	if depth >= depthLimit() {
		return NotAllowed, &CycleError{Capability: op.capability, Object: kindOf(object), Depth: depth}
	}
	if check, ok := global.restriction(op, kindOf(object)); ok {
		return check(object), nil
	}
	d := resolveDelegation(op.capability, object)
	if !d.delegates {
		noteFallback(Fallback{Site: SitePermission, Capability: op.capability, Object: kindOf(object), Depth: depth})
		return Allowed, nil
	}
	return checkPermission(op, d.get(object), depth+1)
}

// AssertPermission checks op on the object and fails with a
// *PermissionError carrying the operation and object identity when the
// verdict is NotAllowed. It is a no-op on Allowed.
func AssertPermission(op Op, object any) error {
	v, err := CheckPermission(op, object)
	if err != nil {
		return err
	}
	if v == NotAllowed {
		return &PermissionError{Op: op, Object: kindOf(object)}
	}
	return nil
}
