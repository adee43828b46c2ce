// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

// Keys seeded into every layout context.
const (
	KeyVersion  = "lowboy_version"
	KeyAppTitle = "app_title"
	KeyTitle    = "title"
)

// Context is the ordered string map handed to the layout. Keys keep the
// position of their first insertion.
type Context struct {
	keys   []string
	values map[string]string
}

// NewContext returns a context holding the given key, value pairs. A
// trailing key without a value is ignored.
func NewContext(pairs ...string) *Context {
	c := &Context{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Set(pairs[i], pairs[i+1])
	}
	return c
}

// Title is a context holding only the page title.
func Title(title string) *Context {
	return NewContext(KeyTitle, title)
}

// Set stores value under key and returns c.
func (c *Context) Set(key, value string) *Context {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	return c
}

// Lookup returns the value of key.
func (c *Context) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.values[key]
	return v, ok
}

// Get returns the value of key, or "" when absent. Templates use it as
// {{.Context.Get "title"}}.
func (c *Context) Get(key string) string {
	v, _ := c.Lookup(key)
	return v
}

// Keys returns the keys in insertion order.
func (c *Context) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Len returns the number of keys.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Merge copies every entry of other into c, overwriting existing values.
func (c *Context) Merge(other *Context) *Context {
	if other == nil {
		return c
	}
	for _, k := range other.keys {
		c.Set(k, other.values[k])
	}
	return c
}
