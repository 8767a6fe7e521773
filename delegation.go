// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import "reflect"

// Delegation is the verdict of delegation resolution: either the object is
// directly responsible for a capability (NoDelegation), or it forwards
// responsibility to one of its own fields (DelegateToField).
//
// The zero value is NoDelegation.
type Delegation struct {
	field     string
	get       func(any) any
	delegates bool
}

// NoDelegation is the verdict for an object that is directly responsible.
func NoDelegation() Delegation {
	return Delegation{}
}

// DelegateToField builds the verdict for an object that forwards
// responsibility to the named field, fetched by get.
//
// Go has no by-name field access without reflection, so the accessor is
// explicit; the field name exists for diagnostics only.
func DelegateToField(field string, get func(any) any) Delegation {
	if field == "" {
		panic("traits: empty delegation field name")
	}
	if get == nil {
		panic("traits: nil delegation accessor")
	}
	return Delegation{field: field, get: get, delegates: true}
}

// Delegates reports whether the verdict forwards responsibility.
func (d Delegation) Delegates() bool {
	return d.delegates
}

// Field returns the delegation target's field name, or "" for NoDelegation.
func (d Delegation) Field() string {
	return d.field
}

// DelegateField registers a delegation rule: objects of kind O forward
// responsibility for capability T to the named field, fetched by get.
//
// Registering a second rule for the same (T, O) pair panics: when two rules
// want the same pair there is no principled resolution order, so the
// conflict is reported at registration time rather than guessed at.
func DelegateField[T Tag, O any](field string, get func(O) any) {
	if get == nil {
		panic("traits: nil delegation accessor")
	}
	d := DelegateToField(field, func(object any) any {
		return get(object.(O))
	})
	global.setDelegation(pairKey{capability: tagOf[T](), object: reflect.TypeFor[O]()}, d)
}

// ResolveDelegation returns the delegation verdict for capability T on the
// object. The verdict is a pure function of (tag type, object type); with no
// registered rule the default is NoDelegation.
func ResolveDelegation[T Tag](object any) Delegation {
	return resolveDelegation(tagOf[T](), object)
}

func resolveDelegation(capability reflect.Type, object any) Delegation {
	if d, ok := global.delegation(capability, kindOf(object)); ok {
		return d
	}
	noteFallback(Fallback{Site: SiteDelegation, Capability: capability, Object: kindOf(object)})
	return NoDelegation()
}

// DelegateOf fetches the object's delegate for capability T.
// Calling DelegateOf on an object whose verdict is NoDelegation is a
// programming-contract violation and returns a *ConfigurationError.
func DelegateOf[T Tag](object any) (any, error) {
	return delegateOf(tagOf[T](), object)
}

func delegateOf(capability reflect.Type, object any) (any, error) {
	d := resolveDelegation(capability, object)
	if !d.delegates {
		return nil, &ConfigurationError{
			Capability: capability,
			Object:     kindOf(object),
			Reason:     "delegate requested but object declares no delegation",
		}
	}
	return d.get(object), nil
}

// Chain returns the delegation chain for capability T starting at object:
// the object itself, then every delegate down to the terminal NoDelegation
// object. A chain longer than the depth limit yields a *CycleError.
func Chain[T Tag](object any) ([]any, error) {
	capability := tagOf[T]()
	chain := []any{object}
	for depth := 0; ; depth++ {
		if depth >= depthLimit() {
			return nil, &CycleError{Capability: capability, Object: kindOf(object), Depth: depth}
		}
		d := resolveDelegation(capability, object)
		if !d.delegates {
			return chain, nil
		}
		object = d.get(object)
		chain = append(chain, object)
	}
}
