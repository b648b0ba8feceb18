package markup

import (
	"context"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

// policyCache memoizes per-type policies and member signatures. It is the
// only state shared between concurrent serialization calls; every access
// follows the read-lock fast path / write-lock double-check pattern.
type policyCache struct {
	mu         sync.RWMutex
	policies   map[reflect.Type]Policy
	signatures map[reflect.Type]*sentinel.Metadata
}

func newPolicyCache() *policyCache {
	return &policyCache{
		policies:   make(map[reflect.Type]Policy),
		signatures: make(map[reflect.Type]*sentinel.Metadata),
	}
}

// policyFor returns the cached policy for a concrete type, resolving it
// on first use. Types implementing PolicyProvider supply their own policy;
// everything else receives DefaultPolicy.
func (c *policyCache) policyFor(rt reflect.Type) Policy {
	// Fast path: read-lock cache check
	c.mu.RLock()
	if pol, ok := c.policies[rt]; ok {
		c.mu.RUnlock()
		return pol
	}
	c.mu.RUnlock()

	// Slow path: resolve and cache with write-lock
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check pattern
	if pol, ok := c.policies[rt]; ok {
		return pol
	}

	pol := resolvePolicy(rt)
	c.policies[rt] = pol
	emitPolicyResolved(context.Background(), rt.String(), pol)
	return pol
}

// signatureFor returns the member signature for a struct type. Signatures
// are cached unless the type's policy disables signature caching.
func (c *policyCache) signatureFor(rt reflect.Type) *sentinel.Metadata {
	if !c.policyFor(rt).EnableSignatureCaching {
		return scanType(rt)
	}

	c.mu.RLock()
	if meta, ok := c.signatures[rt]; ok {
		c.mu.RUnlock()
		return meta
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if meta, ok := c.signatures[rt]; ok {
		return meta
	}

	meta := scanType(rt)
	c.signatures[rt] = meta
	return meta
}

// reset clears all cached policies and signatures.
func (c *policyCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policies = make(map[reflect.Type]Policy)
	c.signatures = make(map[reflect.Type]*sentinel.Metadata)
}

// resolvePolicy derives the policy for a type from its PolicyProvider
// implementation, if any. The provider is invoked on a zero value.
func resolvePolicy(rt reflect.Type) Policy {
	// New covers both value and pointer receiver method sets.
	if pp, ok := reflect.New(rt).Interface().(PolicyProvider); ok {
		return pp.SerializationPolicy()
	}
	return DefaultPolicy()
}
