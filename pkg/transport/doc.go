// Package transport sends single HTTP requests to the mbuzz collection API.
//
// Transport is the seam between the SDK and the network. HTTP is the
// production implementation built on *http.Client with one timeout shared by
// connection setup and the full exchange; Func turns a plain function into a
// Transport so tests can capture requests without a server:
//
//	var got []byte
//	tr := transport.Func(func(ctx context.Context, method, url string, body []byte, h http.Header) (transport.Response, error) {
//	    got = body
//	    return transport.Response{StatusCode: 201, Body: []byte(`{}`)}, nil
//	})
//
// There is no retry, backoff or batching: each call is one
// request, and a failure is final.
//
// Errors are returned only when no HTTP response was obtained (invalid URL,
// connection failure, timeout). Non-2xx responses come back as a Response;
// StatusError formats one for logs.
package transport
