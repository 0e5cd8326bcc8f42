// Package atlas provides storage for packed glyph data.
//
// Store is a fixed-capacity word buffer in CPU memory that implements
// rays.Sink. It tracks the range written since the last synchronization
// so a GPU mirror can upload only what changed. Cache sits in front of
// any sink and uploads each glyph once.
package atlas
