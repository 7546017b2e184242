// Package blob stores opaque byte objects under slash-separated keys, either
// on the local filesystem or in an S3-compatible bucket.
//
//	store, err := blob.NewS3(ctx, cfg)
//	err = store.Put(ctx, "registrations/"+id+".json", data, "application/json")
//	data, err := store.Get(ctx, "registrations/"+id+".json")
//
// Keys must be relative and may not contain ".." segments. Backend failures
// are classified into the sentinel errors of errors.go.
package blob
