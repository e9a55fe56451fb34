package api

import (
	"io"
	"net/url"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// stubHTTPClient is a mock implementation of tls_client.HttpClient. It
// records every request it sees and answers from a queue of canned
// responses (the last one repeats once the queue is exhausted).
type stubHTTPClient struct {
	responses []stubResponse
	calls     int
	requests  []*fhttp.Request
	bodies    []string
}

type stubResponse struct {
	statusCode int
	body       string
	err        error
}

func newStubHTTPClient(responses ...stubResponse) *stubHTTPClient {
	return &stubHTTPClient{responses: responses}
}

func okStub(body string) *stubHTTPClient {
	return newStubHTTPClient(stubResponse{statusCode: 200, body: body})
}

func (s *stubHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	idx := s.calls
	s.calls++
	s.requests = append(s.requests, req)

	// Capture the body before the transport would consume it
	var sent string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		sent = string(data)
	}
	s.bodies = append(s.bodies, sent)

	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	resp := s.responses[idx]
	if resp.err != nil {
		return nil, resp.err
	}

	return &fhttp.Response{
		StatusCode: resp.statusCode,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(fhttp.Header),
	}, nil
}

func (s *stubHTTPClient) lastRequest() *fhttp.Request {
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *stubHTTPClient) lastBody() string {
	if len(s.bodies) == 0 {
		return ""
	}
	return s.bodies[len(s.bodies)-1]
}

// Remaining tls_client.HttpClient methods are inert.

func (s *stubHTTPClient) GetCookies(u *url.URL) []*fhttp.Cookie               { return nil }
func (s *stubHTTPClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie)      {}
func (s *stubHTTPClient) SetCookieJar(jar fhttp.CookieJar)                    {}
func (s *stubHTTPClient) GetCookieJar() fhttp.CookieJar                       { return nil }
func (s *stubHTTPClient) SetProxy(proxyURL string) error                      { return nil }
func (s *stubHTTPClient) GetProxy() string                                    { return "" }
func (s *stubHTTPClient) SetFollowRedirect(follow bool)                       {}
func (s *stubHTTPClient) GetFollowRedirect() bool                             { return false }
func (s *stubHTTPClient) CloseIdleConnections()                               {}
func (s *stubHTTPClient) GetBandwidthTracker() bandwidth.BandwidthTracker     { return nil }

func (s *stubHTTPClient) Get(u string) (*fhttp.Response, error) {
	return s.Do(&fhttp.Request{})
}

func (s *stubHTTPClient) Head(u string) (*fhttp.Response, error) {
	return s.Do(&fhttp.Request{})
}

func (s *stubHTTPClient) Post(u, contentType string, body io.Reader) (*fhttp.Response, error) {
	return s.Do(&fhttp.Request{})
}
