// Package httputil provides retry helpers shared by the upstream API clients.
//
// [Retry] re-runs an operation while it fails with a [RetryableError],
// doubling the delay between attempts. Clients wrap transient failures
// (network errors, 5xx responses, HTTP 429) as retryable:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// Rate-limited responses carry the server's Retry-After hint in
// [RetryableError.After]; see [ParseRetryAfter].
package httputil
