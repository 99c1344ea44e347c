package wikibase

import (
	"context"
	"net/url"

	"github.com/teranos/wikibase/datavalue"
	"github.com/teranos/wikibase/errors"
	"github.com/teranos/wikibase/logger"
)

// AddClaim creates a value claim on entity (action=wbcreateclaim)
func (c *Client) AddClaim(ctx context.Context, entity, property string, value datavalue.Value, summary string, opts Options) (*Response, error) {
	wire, err := datavalue.MarshalWire(value)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode value for %s", property)
	}

	ctx, log := c.begin(ctx)
	log.Infow("Adding claim", logger.FieldEntity, entity, logger.FieldProperty, property)

	return c.edit(ctx, url.Values{
		"action":   {"wbcreateclaim"},
		"entity":   {entity},
		"property": {property},
		"snaktype": {"value"},
		"value":    {wire},
		"summary":  {summary},
	}, opts)
}

// DelClaims removes claims by GUID (action=wbremoveclaims)
func (c *Client) DelClaims(ctx context.Context, ids IDs, summary string, opts Options) (*Response, error) {
	ctx, log := c.begin(ctx)
	log.Infow("Removing claims", logger.FieldClaim, ids.String(), logger.FieldCount, len(ids))

	return c.edit(ctx, url.Values{
		"action":  {"wbremoveclaims"},
		"claim":   {ids.String()},
		"summary": {summary},
	}, opts)
}

// SetClaim replaces the main value of an existing claim (action=wbsetclaimvalue)
func (c *Client) SetClaim(ctx context.Context, claim string, value datavalue.Value, summary string, opts Options) (*Response, error) {
	wire, err := datavalue.MarshalWire(value)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot encode value for %s", claim)
	}

	ctx, log := c.begin(ctx)
	log.Infow("Setting claim value", logger.FieldClaim, claim)

	return c.edit(ctx, url.Values{
		"action":   {"wbsetclaimvalue"},
		"claim":    {claim},
		"snaktype": {"value"},
		"value":    {wire},
		"summary":  {summary},
	}, opts)
}

// edit submits a write under the token protocol. Each attempt starts from a
// fresh copy of the parameters.
func (c *Client) edit(ctx context.Context, params url.Values, opts Options) (*Response, error) {
	return c.withEditToken(ctx, func(ctx context.Context) (*Response, error) {
		return c.postWithToken(ctx, opts.apply(params))
	})
}
