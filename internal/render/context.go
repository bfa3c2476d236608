// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package render turns the document model into Markdown, YAML or JSON.
package render

// Context holds the mutable state of one render call. Every document gets
// its own Context, so list numbering never leaks between documents.
type Context struct {
	lists    int
	counters map[int]int
}

// NewContext creates an empty render context.
func NewContext() *Context {
	return &Context{counters: make(map[int]int)}
}

// NewList starts a numbered list and returns its id. Ids start at 1.
func (c *Context) NewList() int {
	c.lists++
	c.counters[c.lists] = 0
	return c.lists
}

// Next returns the next item number of list id, starting at 1.
func (c *Context) Next(id int) int {
	c.counters[id]++
	return c.counters[id]
}

// Lists returns the number of lists started so far.
func (c *Context) Lists() int {
	return c.lists
}
