// Package catalog defines the item records served by the remote games API
// and the small set of helpers the presentation layer uses to show them.
//
// Items are immutable once fetched. Identity is the item ID, which the
// upstream API may encode as a JSON integer or a JSON string; both forms
// decode to the same canonical ID.
package catalog
