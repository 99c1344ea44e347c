package wikibase

import (
	"context"
	"net/url"
	"strings"

	"github.com/teranos/wikibase/logger"
)

// IDs is a list of entity or claim ids, sent "|"-joined. An element may itself
// already be a joined list.
type IDs []string

func (ids IDs) String() string {
	return strings.Join(ids, "|")
}

// Options are extra API parameters passed through verbatim. Parameters the
// operation sets itself take precedence.
type Options map[string]string

func (o Options) apply(params url.Values) url.Values {
	out := url.Values{}
	for k, v := range o {
		out.Set(k, v)
	}
	for k, v := range params {
		out[k] = v
	}
	return out
}

// ClaimsQuery selects claims for wbgetclaims. Empty fields are omitted.
type ClaimsQuery struct {
	Entity   string
	Claim    string
	Property string
}

// GetEntities fetches entities by id (action=wbgetentities)
func (c *Client) GetEntities(ctx context.Context, ids IDs, opts Options) (*Response, error) {
	ctx, log := c.begin(ctx)
	log.Debugw("Fetching entities", logger.FieldEntity, ids.String())

	return c.get(ctx, opts.apply(url.Values{
		"action": {"wbgetentities"},
		"ids":    {ids.String()},
	}))
}

// GetClaims fetches claims (action=wbgetclaims)
func (c *Client) GetClaims(ctx context.Context, q ClaimsQuery, opts Options) (*Response, error) {
	ctx, log := c.begin(ctx)
	log.Debugw("Fetching claims",
		logger.FieldEntity, q.Entity,
		logger.FieldClaim, q.Claim,
		logger.FieldProperty, q.Property)

	params := url.Values{"action": {"wbgetclaims"}}
	if q.Entity != "" {
		params.Set("entity", q.Entity)
	}
	if q.Claim != "" {
		params.Set("claim", q.Claim)
	}
	if q.Property != "" {
		params.Set("property", q.Property)
	}
	return c.get(ctx, opts.apply(params))
}
