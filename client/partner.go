package client

import (
	"context"

	"github.com/jakub-gawryl/hrdapi/envelope"
)

// Balance is the partner account balance
type Balance struct {
	// Balance is the available balance
	Balance float64 `json:"balance"`
	// RestrictedBalance is the amount blocked by operations in progress
	RestrictedBalance float64 `json:"restrictedBalance"`
}

// PartnerGetBalance returns the account balance and the funds blocked
// for operations in progress.
func (c *Client) PartnerGetBalance(ctx context.Context) (Balance, error) {
	const op = "partner/getBalance"
	reply, err := c.call(ctx, "partner", "getBalance", envelope.Null())
	if err != nil {
		return Balance{}, err
	}
	var b Balance
	var ok bool
	if b.Balance, ok, err = floatField(reply, "balance"); !ok || err != nil {
		return Balance{}, narrowError(op, reply, "reply has no valid balance")
	}
	if b.RestrictedBalance, _, err = floatField(reply, "restrictedBalance"); err != nil {
		return Balance{}, narrowError(op, reply, "reply has an invalid restrictedBalance")
	}
	return b, nil
}

// PartnerPricingServiceInfo returns the partner purchase prices of the
// named service.
func (c *Client) PartnerPricingServiceInfo(ctx context.Context, serviceName string) (envelope.Value, error) {
	return c.call(ctx, "partner", "getPricingInfo", envelope.Map(envelope.F("name", envelope.Text(serviceName))))
}

// PartnerGetPricingsList returns the list of partner price lists
func (c *Client) PartnerGetPricingsList(ctx context.Context) (envelope.Value, error) {
	return c.call(ctx, "partner", "getPricingsList", envelope.Null())
}

// PartnerGetPricings returns the partner price lists. The API exposes
// them through the same getPricingsList call.
func (c *Client) PartnerGetPricings(ctx context.Context) (envelope.Value, error) {
	return c.call(ctx, "partner", "getPricingsList", envelope.Null())
}
