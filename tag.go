// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import "reflect"

// Tag is the interface for capability tags.
// A capability tag is a stateless nominal marker identifying one abstract
// interface (a family of operations). Identity is the tag's type, never a
// value: two values of the same tag type denote the same capability.
//
// Concrete tags embed [Capability]:
//
//	type GraphOps struct{ traits.Capability }
type Tag interface {
	CapabilityTag() // marker, never called for its result
}

// Capability is an embeddable zero-size type that provides the [Tag] marker.
// Embed Capability in a tag struct to satisfy [Tag] without writing a
// manual CapabilityTag method.
//
// Example:
//
//	type Numeric struct{ traits.Capability }
type Capability struct{}

// CapabilityTag implements the marker for [Tag].
func (Capability) CapabilityTag() {}

// tagOf returns the runtime identity of the tag type T.
func tagOf[T Tag]() reflect.Type {
	return reflect.TypeFor[T]()
}

// kindOf returns the runtime identity of an object's dynamic type.
func kindOf(object any) reflect.Type {
	return reflect.TypeOf(object)
}
