package wikibase

import (
	"net/http"
	"sort"
	"time"
)

// Session is the mutable authentication state of one Client.
//
// It is owned by exactly one Client and mutated in place on every exchange;
// there is no locking. Callers sharing a Client across goroutines must
// serialise access themselves.
type Session struct {
	Endpoint string
	Username string
	Bot      bool
	Maxlag   int

	// EditToken is empty until the first write fetches one, and is cleared
	// when the server rejects it.
	EditToken string

	cookies map[string]*http.Cookie
}

// HasToken reports whether an edit token is held
func (s Session) HasToken() bool {
	return s.EditToken != ""
}

// mergeCookies applies cookies from a response. Cookies cleared by the server,
// through Max-Age or a past Expires date, are dropped.
func (s *Session) mergeCookies(cookies []*http.Cookie) {
	now := time.Now()
	if len(cookies) == 0 {
		return
	}
	if s.cookies == nil {
		s.cookies = make(map[string]*http.Cookie)
	}
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
}

// Cookies returns the session cookies ordered by name
func (s Session) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(s.cookies))
	for _, c := range s.cookies {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// clone returns a copy that shares nothing with s
func (s *Session) clone() Session {
	cp := *s
	cp.cookies = make(map[string]*http.Cookie, len(s.cookies))
	for name, c := range s.cookies {
		cp.cookies[name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return cp
}
