// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package traits

import (
	"log/slog"
	"reflect"
	"sync/atomic"
)

// Site names the resolution point that fell back to its default.
type Site string

// Fallback sites.
const (
	SiteDelegation     Site = "delegation"      // no rule → NoDelegation
	SiteImplementation Site = "implementation"  // no marker at boundary → DoesNotImplement
	SitePermission     Site = "permission"      // no restriction at boundary → Allowed
	SiteEffectCheck    Site = "effect-check"    // no checker at a level → approve
	SiteEffectHandle   Site = "effect-handle"   // no handler at a level → no-op
)

// Fallback describes one silent fall-through to a default during
// resolution. It is handed to the registered observer and is purely
// observational: nothing the observer does changes verdicts or control flow.
type Fallback struct {
	Site       Site
	Capability reflect.Type
	Object     reflect.Type
	Depth      int
}

// observer holds the registered fallback observer; nil means no-op.
var observer atomic.Pointer[func(Fallback)]

// SetFallbackObserver registers fn to receive every resolution fallback.
// Passing nil restores the default no-op. The observer runs synchronously on
// the resolving goroutine; keep it cheap.
func SetFallbackObserver(fn func(Fallback)) {
	if fn == nil {
		observer.Store(nil)
		return
	}
	observer.Store(&fn)
}

// noteFallback invokes the observer, if any. It must never affect control
// flow or return values — resolution behaves identically with or without an
// observer installed.
func noteFallback(f Fallback) {
	if fn := observer.Load(); fn != nil {
		(*fn)(f)
	}
}

// LogFallbacks returns an observer that emits one debug record per fallback
// through the given structured logger.
//
//	traits.SetFallbackObserver(traits.LogFallbacks(slog.Default()))
func LogFallbacks(logger *slog.Logger) func(Fallback) {
	return func(f Fallback) {
		logger.Debug("traits fallback",
			"site", string(f.Site),
			"capability", typeName(f.Capability),
			"object", typeName(f.Object),
			"depth", f.Depth,
		)
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
