package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/gopcua/opcua/ua"

	"github.com/rileyhilliard/plcdash/internal/errors"
)

// DefaultProbeTimeout bounds a Probe when ctx has no deadline.
const DefaultProbeTimeout = 5 * time.Second

// Probe connects once, reads the node and returns how many values it holds.
// It is how 'plcdash init' checks the settings before saving them.
func Probe(ctx context.Context, endpoint, nodeID string) (int, error) {
	node, err := ua.ParseNodeID(nodeID)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid node id %q", nodeID),
			"Use the ns=<n>;s=<name> or ns=<n>;i=<id> form, e.g. ns=2;s=group1")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultProbeTimeout)
		defer cancel()
	}

	c, err := dial(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	defer c.Close(context.Background())

	resp, err := c.Read(ctx, &ua.ReadRequest{
		NodesToRead: []*ua.ReadValueID{
			{NodeID: node, AttributeID: ua.AttributeIDValue},
		},
		TimestampsToReturn: ua.TimestampsToReturnNeither,
	})
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Failed to read %s", nodeID), "")
	}
	if len(resp.Results) == 0 || resp.Results[0] == nil {
		return 0, errors.New(errors.ErrTransport,
			fmt.Sprintf("Server returned nothing for %s", nodeID), "")
	}
	if st := resp.Results[0].Status; st != ua.StatusOK {
		return 0, errors.WrapWithCode(st, errors.ErrTransport,
			fmt.Sprintf("Server rejected node %s", nodeID),
			"Check the node id against the server's address space")
	}
	if resp.Results[0].Value == nil {
		return 0, errors.New(errors.ErrTransport,
			fmt.Sprintf("Node %s has no value", nodeID), "")
	}

	values, err := ToFloats(resp.Results[0].Value.Value())
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Node %s doesn't hold numbers", nodeID),
			"Point --node at the array of process values")
	}
	return len(values), nil
}
