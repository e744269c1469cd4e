// Package store holds the key-value configuration the bot reads and writes:
// coordinates, city and geocoding parameter, keyed by weather.Key* names.
package store

import "context"

// Store is the contract both the SSM Parameter Store adapter and the
// in-memory store satisfy.
type Store interface {
	// Get returns only the keys that exist; missing keys are simply absent.
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	// Put writes every entry independently, always overwriting.
	Put(ctx context.Context, params map[string]string) error
}

// AllSet reports whether every key is present in params with a non-empty value.
func AllSet(params map[string]string, keys ...string) bool {
	for _, k := range keys {
		if params[k] == "" {
			return false
		}
	}
	return true
}
