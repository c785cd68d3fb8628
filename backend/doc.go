// Package backend resolves which storage system owns a path and exposes the
// small capability surface sequences need from it: listing siblings,
// existence, version-control tracking and moving files.
//
// Providers register in a Registry with an explicit priority; resolution
// walks providers from highest to lowest priority and picks the first whose
// CanHandle probe accepts the path. CanHandle is cheap and side-effect free.
// The default registry carries only the disk provider; Perforce support is
// opt-in by opening a Session and registering the provider it backs.
package backend
