// Package clientip resolves the address of the client behind an HTTP request.
//
// A Resolver checks a configured list of proxy headers in order and falls
// back to the TCP peer address. List-valued headers such as X-Forwarded-For
// yield their first valid entry. Headers are ignored unless configured,
// since any client can send them when no proxy rewrites them.
//
//	res := clientip.New("CF-Connecting-IP", "X-Forwarded-For")
//	r.Use(res.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
