// Package httputil holds the HTTP plumbing shared by the keyplate API
// server and its client.
//
// # JSON
//
// [WriteJSON] and [WriteError] produce every response body the server
// sends. Errors carry the machine-readable code from pkg/errors:
//
//	{"code": "INVALID_CONFIG", "message": "unknown stabilizer style \"alps\""}
//
// [StatusFor] maps codes to HTTP statuses: input and configuration errors
// are 400, NOT_FOUND is 404, UNSUPPORTED is 422, everything else is 500.
// [DecodeJSON] reads request bodies with a size limit and rejects unknown
// fields.
//
// # Retry
//
// [Retry] wraps requests with exponential backoff. Only errors wrapped in
// [RetryableError] are retried; [CheckResponse] wraps 429 and 5xx
// responses that way:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckResponse(resp)
//	})
package httputil
