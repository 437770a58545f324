// Package properties holds the named values a layout is rendered against.
// A Store keeps properties in load order, matches names case-insensitively
// and derives TotalAmount from ItemQuantity and ItemPrice. Stores are owned
// by their caller and are not safe for concurrent mutation.
package properties
