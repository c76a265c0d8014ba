// Package apiclient is the single chokepoint for calls to the jcc backend.
//
// Every backend response is wrapped in an envelope:
//
//	{"code": 200, "data": {...}, "msg": null}
//
// The client unwraps it so callers only ever see data. A code other than
// 200 becomes a *RemoteError carrying msg; network failures, timeouts and
// non-2xx responses without an envelope become a *TransportError. Bodies
// without a code member pass through untouched.
//
// # Usage
//
//	cfg := apiclient.DefaultConfig("http://localhost:8080")
//	client, err := apiclient.New(cfg, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := apiclient.Fetch[MyPayload](ctx, client, apiclient.Request{
//		Path:   "/lineup/list",
//		Params: apiclient.Params{"page": 1, "size": 10},
//	})
//
// # Retries
//
// Transport failures are retried once. Envelope failures are application
// errors and are never retried, whatever the HTTP status.
package apiclient
