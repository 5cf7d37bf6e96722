// Package model defines the intermediate representation shared by the
// extractor, bundler and generator.
//
// Descriptors are built once, during extraction and bundling, and are
// treated as read-only afterwards. Types that need to appear in more than one
// module are copied with Clone so that no two modules share a descriptor.
//
// The global type pool is assembled with a [PoolBuilder] and frozen into a
// [TypePool], which has no mutators.
package model
