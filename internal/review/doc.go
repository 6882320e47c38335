// Package review stores per-item reviews.
//
// All reviews live in one mapping from item id to an append-only list,
// persisted whole under the "reviews" key on every submission. The store
// does not know about sessions; callers decide who may submit.
package review
