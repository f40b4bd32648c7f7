// Package s3store uploads collection content to an S3-compatible bucket under
// content-addressed keys and returns public URIs for it.
package s3store
