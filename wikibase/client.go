// Package wikibase is a client for the Wikibase action API.
//
// A Client owns one authenticated session. New logs in; reads use the session
// directly and writes additionally acquire an edit token on first use, renewing
// it once if the server reports badtoken. Every request carries maxlag and is
// retried at a fixed interval while the server sheds load.
//
// A Client is intended for sequential use. It mutates its session in place and
// is not safe for concurrent use without external locking.
package wikibase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/wikibase/am"
	"github.com/teranos/wikibase/errors"
	"github.com/teranos/wikibase/logger"
)

// Defaults applied by New to zero Config fields
const (
	DefaultEndpoint         = am.DefaultEndpoint
	DefaultMaxlag           = am.DefaultMaxlag
	DefaultMaxlagRetryDelay = am.DefaultMaxlagRetryDelaySeconds * time.Second
	DefaultMaxlagAttempts   = am.DefaultMaxlagAttempts
	maxEditTokenAttempts    = 2
	anonymousEditToken      = `+\`
)

// Config holds client configuration
type Config struct {
	Endpoint string // api.php URL (default: Wikidata)
	Username string
	Password string
	Bot      bool // send bot=1 on writes

	Maxlag           int           // maxlag parameter (default: 5)
	MaxlagRetryDelay time.Duration // fixed wait between maxlag retries (default: 5s)
	MaxlagAttempts   int           // total attempts per request (default: 3)

	EditsPerMinute int // 0 = unthrottled

	// LogParams adds the request parameters, secrets masked, to debug lines
	LogParams bool

	Transport Transport          // nil = HTTPTransport with defaults
	Logger    *zap.SugaredLogger // nil = component logger "wikibase"
	UserAgent string             // only used when Transport is nil
}

// Client is a Wikibase API session
type Client struct {
	session        Session
	transport      Transport
	maxlagDelay    time.Duration
	maxlagAttempts int
	limiter        *rate.Limiter
	logger         *zap.SugaredLogger
	logParams      bool

	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client and logs in. No client is returned unless login succeeds.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Maxlag == 0 {
		cfg.Maxlag = DefaultMaxlag
	}
	if cfg.MaxlagRetryDelay == 0 {
		cfg.MaxlagRetryDelay = DefaultMaxlagRetryDelay
	}
	if cfg.MaxlagAttempts <= 0 {
		cfg.MaxlagAttempts = DefaultMaxlagAttempts
	}
	if cfg.Transport == nil {
		cfg.Transport = NewHTTPTransport(HTTPTransportOptions{UserAgent: cfg.UserAgent})
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.ComponentLogger("wikibase")
	}

	c := &Client{
		session: Session{
			Endpoint: cfg.Endpoint,
			Username: cfg.Username,
			Bot:      cfg.Bot,
			Maxlag:   cfg.Maxlag,
		},
		transport:      cfg.Transport,
		maxlagDelay:    cfg.MaxlagRetryDelay,
		maxlagAttempts: cfg.MaxlagAttempts,
		logger:         cfg.Logger,
		logParams:      cfg.LogParams,
		sleep:          sleepContext,
	}
	if cfg.EditsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.EditsPerMinute)/60.0), 1)
	}

	if err := c.login(ctx, cfg.Password); err != nil {
		return nil, err
	}
	return c, nil
}

// NewFromConfig creates a client from loaded configuration
func NewFromConfig(ctx context.Context, cfg *am.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	transport := NewHTTPTransport(HTTPTransportOptions{
		Timeout:        time.Duration(cfg.GetTimeoutSeconds()) * time.Second,
		MaxRedirects:   cfg.GetMaxRedirects(),
		BlockPrivateIP: cfg.HTTP.BlockPrivateIP,
		UserAgent:      cfg.HTTP.UserAgent,
	})

	return New(ctx, Config{
		Endpoint:         cfg.GetEndpoint(),
		Username:         cfg.Wikibase.Username,
		Password:         cfg.Wikibase.Password,
		Bot:              cfg.Wikibase.Bot,
		Maxlag:           cfg.GetMaxlag(),
		MaxlagRetryDelay: time.Duration(cfg.GetMaxlagRetryDelaySeconds()) * time.Second,
		MaxlagAttempts:   cfg.GetMaxlagAttempts(),
		EditsPerMinute:   cfg.Wikibase.EditsPerMinute,
		LogParams:        logger.ShouldLogTrace(cfg.Log.Verbosity),
		Transport:        transport,
		UserAgent:        cfg.HTTP.UserAgent,
	})
}

// Session returns a snapshot of the session state
func (c *Client) Session() Session {
	return c.session.clone()
}

// begin tags ctx with a request id unless the caller already set one
func (c *Client) begin(ctx context.Context) (context.Context, *zap.SugaredLogger) {
	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, uuid.NewString())
	}
	return ctx, logger.FromContext(ctx, c.logger)
}

func (c *Client) get(ctx context.Context, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, params)
}

func (c *Client) post(ctx context.Context, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodPost, params)
}

// do runs one request through the maxlag protocol: the same parameters are
// resent after a fixed delay while the server answers maxlag, up to
// maxlagAttempts in total. Cookies are merged from every reply.
func (c *Client) do(ctx context.Context, method string, params url.Values) (*Response, error) {
	params.Set("format", "json")
	params.Set("maxlag", strconv.Itoa(c.session.Maxlag))

	log := logger.FromContext(ctx, c.logger).With(logger.FieldMethod, method, logger.FieldAction, params.Get("action"))
	if c.logParams {
		log = log.With(logger.FieldParams, redactParams(params))
	}

	var resp *Response
	for attempt := 1; attempt <= c.maxlagAttempts; attempt++ {
		start := time.Now()
		body, cookies, err := c.transport.Do(ctx, method, c.session.Endpoint, params, c.session.Cookies())
		c.session.mergeCookies(cookies)
		if err != nil {
			return nil, errors.Wrapf(err, "%s action=%s", method, params.Get("action"))
		}

		resp, err = parseResponse(body)
		if err != nil {
			return nil, err
		}

		log.Debugw("API exchange",
			logger.FieldAttempt, attempt,
			logger.FieldDurationMS, time.Since(start).Milliseconds())

		if !resp.IsError(CodeMaxlag) {
			return resp, nil
		}

		log.Warnw("Server lagged, backing off",
			logger.FieldAttempt, attempt,
			"max_attempts", c.maxlagAttempts,
			logger.FieldDelay, c.maxlagDelay.String(),
			logger.FieldErrorInfo, resp.Error.Info)

		if attempt < c.maxlagAttempts {
			if err := c.sleep(ctx, c.maxlagDelay); err != nil {
				return nil, errors.Wrap(err, "interrupted during maxlag backoff")
			}
		}
	}

	return nil, errors.WithDetailf(
		errors.Wrapf(errors.ErrServerOverloaded, "retry limit exceeded, server reported: %s", resp.Error.Info),
		"action=%s attempts=%d", params.Get("action"), c.maxlagAttempts)
}

// secretParams are masked when parameters are logged
var secretParams = []string{"lgpassword", "lgtoken", "token"}

func redactParams(params url.Values) string {
	cp := make(url.Values, len(params))
	for k, v := range params {
		cp[k] = v
	}
	for _, k := range secretParams {
		if cp.Has(k) {
			cp.Set(k, "***")
		}
	}
	return cp.Encode()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
