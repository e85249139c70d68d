// Package relocation moves documents staged by the content-management UI into
// the documentation tree. Destinations come from each document's `folder` and
// `title` frontmatter; referenced images are moved into the shared asset
// directory under generated names and the references rewritten.
//
// A run is a sequential, best-effort batch: each document and image is handled
// independently, failures are logged and recorded, and nothing is rolled back.
// Running again with an empty staging directory is a no-op.
package relocation
