package wikibase

import (
	"context"
	"net/url"

	"github.com/teranos/wikibase/errors"
	"github.com/teranos/wikibase/logger"
)

// Login results
const (
	LoginSuccess   = "Success"
	LoginNeedToken = "NeedToken"
)

type loginReply struct {
	Login struct {
		Result   string `json:"result"`
		Token    string `json:"token"`
		Reason   string `json:"reason"`
		Username string `json:"lgusername"`
	} `json:"login"`
}

// login performs the two-phase login: a first attempt, then a resubmission
// with the returned token when the server answers NeedToken.
func (c *Client) login(ctx context.Context, password string) error {
	ctx, log := c.begin(ctx)

	params := url.Values{
		"action":     {"login"},
		"lgname":     {c.session.Username},
		"lgpassword": {password},
	}
	reply, err := c.loginAttempt(ctx, params)
	if err != nil {
		return err
	}

	if reply.Login.Result == LoginNeedToken {
		log.Debugw("Login needs token, resubmitting", logger.FieldUser, c.session.Username)
		params.Set("lgtoken", reply.Login.Token)
		if reply, err = c.loginAttempt(ctx, params); err != nil {
			return err
		}
	}

	if reply.Login.Result != LoginSuccess {
		err := errors.Wrapf(errors.ErrLoginFailed, "login as %q returned %q", c.session.Username, reply.Login.Result)
		if reply.Login.Reason != "" {
			err = errors.WithDetail(err, reply.Login.Reason)
		}
		return errors.WithHint(err, "bot passwords from Special:BotPasswords use the form User@BotName")
	}

	if reply.Login.Username != "" {
		c.session.Username = reply.Login.Username
	}
	log.Infow("Logged in", logger.FieldUser, c.session.Username, logger.FieldEndpoint, c.session.Endpoint)
	return nil
}

func (c *Client) loginAttempt(ctx context.Context, params url.Values) (*loginReply, error) {
	resp, err := c.post(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "login request failed")
	}
	if resp.Error != nil {
		return nil, errors.Wrap(errors.Mark(resp.Error, errors.ErrLoginFailed), "login rejected")
	}

	var reply loginReply
	if err := resp.Decode(&reply); err != nil {
		return nil, errors.Mark(err, errors.ErrLoginFailed)
	}
	return &reply, nil
}

type tokenReply struct {
	Query struct {
		Tokens struct {
			CSRF string `json:"csrftoken"`
		} `json:"tokens"`
	} `json:"query"`
}

// fetchEditToken moves the session from NoToken to HasToken
func (c *Client) fetchEditToken(ctx context.Context) error {
	resp, err := c.get(ctx, url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {"csrf"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to fetch edit token")
	}
	if resp.Error != nil {
		return errors.Wrap(resp.Error, "failed to fetch edit token")
	}

	var reply tokenReply
	if err := resp.Decode(&reply); err != nil {
		return err
	}

	token := reply.Query.Tokens.CSRF
	switch token {
	case "":
		return errors.New("server returned no edit token")
	case anonymousEditToken:
		return errors.WithHint(errors.New("server returned an anonymous edit token"),
			"the session cookies were not accepted; check the endpoint and cookie domain")
	}

	c.session.EditToken = token
	logger.FromContext(ctx, c.logger).Debugw("Acquired edit token")
	return nil
}

// withEditToken runs op with a valid edit token. A badtoken rejection clears
// the token, refetches it and reruns op once; a second rejection is returned
// as the server's error.
func (c *Client) withEditToken(ctx context.Context, op func(ctx context.Context) (*Response, error)) (*Response, error) {
	var rejected *Response

	for attempt := 1; attempt <= maxEditTokenAttempts; attempt++ {
		if !c.session.HasToken() {
			if err := c.fetchEditToken(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := op(ctx)
		if !errors.Is(err, errors.ErrTokenExpired) {
			return resp, err
		}

		logger.FromContext(ctx, c.logger).Infow("Edit token rejected, refreshing", logger.FieldAttempt, attempt)
		c.session.EditToken = ""
		rejected = resp
	}

	if rejected.Err() == nil {
		return nil, errors.New("edit token rejected")
	}
	return nil, errors.Wrapf(rejected.Err(), "edit token rejected %d times", maxEditTokenAttempts)
}

// postWithToken submits a write carrying the current edit token. A badtoken
// reply is returned together with ErrTokenExpired for withEditToken to act on.
func (c *Client) postWithToken(ctx context.Context, params url.Values) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "edit throttle")
		}
	}

	params.Set("token", c.session.EditToken)
	if c.session.Bot {
		params.Set("bot", "1")
	} else {
		params.Del("bot")
	}

	resp, err := c.post(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp.IsError(CodeBadToken) {
		return resp, errors.ErrTokenExpired
	}
	return resp, nil
}
