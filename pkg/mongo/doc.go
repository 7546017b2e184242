// Package mongo opens a MongoDB client with startup retries.
package mongo
