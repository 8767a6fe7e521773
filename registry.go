// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import (
	"reflect"
	"sync"
)

// Open registry for delegation rules, implementation markers, and permission
// restrictions. Keys are (capability type, object type) pairs, so consumers
// extend foreign types after the fact without touching their definitions.
//
// Supported usage is register-before-first-resolution: populate the registry
// from package init (or early in main), then resolve freely. The mutex makes
// late registration safe rather than fast; resolution takes only read locks.

// pairKey identifies one (capability, object kind) registration.
type pairKey struct {
	capability reflect.Type
	object     reflect.Type
}

// opKey identifies one (operation, object kind) permission restriction.
type opKey struct {
	op     Op
	object reflect.Type
}

type registry struct {
	mu           sync.RWMutex
	delegations  map[pairKey]Delegation
	implementors map[pairKey]Implementation
	restrictions map[opKey]func(any) Permission
}

// global is the process-wide registry behind the package-level API.
var global = &registry{
	delegations:  make(map[pairKey]Delegation),
	implementors: make(map[pairKey]Implementation),
	restrictions: make(map[opKey]func(any) Permission),
}

func (r *registry) setDelegation(k pairKey, d Delegation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.delegations[k]; dup {
		panic("traits: duplicate delegation rule for " + k.capability.String() + "/" + k.object.String())
	}
	r.delegations[k] = d
}

func (r *registry) delegation(capability, object reflect.Type) (Delegation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.delegations[pairKey{capability: capability, object: object}]
	return d, ok
}

func (r *registry) setImplementation(k pairKey, v Implementation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.implementors[k]; dup {
		panic("traits: duplicate implementation marker for " + k.capability.String() + "/" + k.object.String())
	}
	r.implementors[k] = v
}

func (r *registry) implementation(capability, object reflect.Type) (Implementation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.implementors[pairKey{capability: capability, object: object}]
	return v, ok
}

func (r *registry) setRestriction(k opKey, check func(any) Permission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.restrictions[k]; dup {
		panic("traits: duplicate permission restriction for " + k.op.String() + "/" + k.object.String())
	}
	r.restrictions[k] = check
}

func (r *registry) restriction(op Op, object reflect.Type) (func(any) Permission, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	check, ok := r.restrictions[opKey{op: op, object: object}]
	return check, ok
}
