// Package posts lists, summarizes, sorts and renders the markdown posts kept
// in a single directory.
//
// A Store is bound to one posts root and is immutable after construction, so
// a single value may be shared between goroutines.
package posts
