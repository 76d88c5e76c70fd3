package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/gopcua/opcua"
	"github.com/gopcua/opcua/ua"

	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/logger"
)

// Defaults match the plant the dashboard was first written for.
const (
	DefaultEndpoint       = "opc.tcp://192.168.1.115:4840"
	DefaultNodeID         = "ns=2;s=group1"
	DefaultInterval       = 500 * time.Millisecond
	DefaultReconnectDelay = 5 * time.Second
)

// linkCheckInterval is how often an idle session checks its connection.
const linkCheckInterval = time.Second

// OPCUAOptions configures an OPC UA subscription source.
type OPCUAOptions struct {
	Endpoint       string
	NodeID         string
	Interval       time.Duration // publishing interval requested from the server
	ReconnectDelay time.Duration
	Observer       Observer
	Logger         logger.Logger
}

// OPCUA subscribes to one array node and stores every data change.
// A lost session is re-established after ReconnectDelay until ctx ends.
type OPCUA struct {
	endpoint string
	nodeID   string
	interval time.Duration
	delay    time.Duration
	observer Observer
	log      logger.Logger
}

// NewOPCUA creates a source. Zero options take the package defaults.
func NewOPCUA(opts OPCUAOptions) *OPCUA {
	s := &OPCUA{
		endpoint: opts.Endpoint,
		nodeID:   opts.NodeID,
		interval: opts.Interval,
		delay:    opts.ReconnectDelay,
		observer: opts.Observer,
		log:      opts.Logger,
	}
	if s.endpoint == "" {
		s.endpoint = DefaultEndpoint
	}
	if s.nodeID == "" {
		s.nodeID = DefaultNodeID
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.delay <= 0 {
		s.delay = DefaultReconnectDelay
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	if s.log == nil {
		s.log = logger.NewEnvLogger("[opcua]")
	}
	return s
}

// Endpoint returns the server URL.
func (s *OPCUA) Endpoint() string {
	return s.endpoint
}

// Run subscribes and reconnects until ctx is cancelled. It only returns an
// error for a node id that can never work.
func (s *OPCUA) Run(ctx context.Context, sink Sink) error {
	node, err := ua.ParseNodeID(s.nodeID)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid node id %q", s.nodeID),
			"Use the ns=<n>;s=<name> or ns=<n>;i=<id> form, e.g. ns=2;s=group1")
	}

	for {
		s.observer.Connecting(s.endpoint)
		s.log.Debug("connecting to %s", s.endpoint)

		err := s.session(ctx, node, sink)
		if ctx.Err() != nil {
			return nil
		}

		s.observer.Disconnected(s.endpoint, err)
		s.log.Warn("link to %s lost: %v (retrying in %s)", s.endpoint, err, s.delay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.delay):
		}
	}
}

// session runs one connect-subscribe-receive cycle.
func (s *OPCUA) session(ctx context.Context, node *ua.NodeID, sink Sink) error {
	c, err := dial(ctx, s.endpoint)
	if err != nil {
		return err
	}
	defer c.Close(context.Background())

	notifyCh := make(chan *opcua.PublishNotificationData, 8)
	sub, err := c.Subscribe(ctx, &opcua.SubscriptionParameters{Interval: s.interval}, notifyCh)
	if err != nil {
		return errors.Wrap(err, "Failed to create subscription")
	}
	defer sub.Cancel(context.Background())

	req := opcua.NewMonitoredItemCreateRequestWithDefaults(node, ua.AttributeIDValue, 1)
	res, err := sub.Monitor(ctx, ua.TimestampsToReturnBoth, req)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Failed to monitor %s", s.nodeID))
	}
	if len(res.Results) == 0 || res.Results[0].StatusCode != ua.StatusOK {
		status := ua.StatusCode(ua.StatusBad)
		if len(res.Results) > 0 {
			status = res.Results[0].StatusCode
		}
		return errors.WrapWithCode(status, errors.ErrTransport,
			fmt.Sprintf("Server rejected node %s", s.nodeID),
			"Check the node id against the server's address space")
	}

	s.observer.Connected(s.endpoint)
	s.log.Info("subscribed to %s on %s", s.nodeID, s.endpoint)

	check := time.NewTicker(linkCheckInterval)
	defer check.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-check.C:
			if st := c.State(); st == opcua.Closed || st == opcua.Disconnected {
				return errors.New(errors.ErrTransport, fmt.Sprintf("Session state %v", st), "")
			}
		case n := <-notifyCh:
			if n.Error != nil {
				return errors.Wrap(n.Error, "Subscription failed")
			}
			s.handle(n, sink)
		}
	}
}

func (s *OPCUA) handle(n *opcua.PublishNotificationData, sink Sink) {
	dc, ok := n.Value.(*ua.DataChangeNotification)
	if !ok {
		return
	}
	for _, item := range dc.MonitoredItems {
		if item == nil || item.Value == nil || item.Value.Value == nil {
			continue
		}
		values, err := ToFloats(item.Value.Value.Value())
		if err != nil {
			s.log.Warn("ignoring update for %s: %v", s.nodeID, err)
			continue
		}
		sink.Store(values)
	}
}

// dial opens an unsecured session. Reconnects are left to the caller.
func dial(ctx context.Context, endpoint string) (*opcua.Client, error) {
	c, err := opcua.NewClient(endpoint,
		opcua.SecurityMode(ua.MessageSecurityModeNone),
		opcua.AutoReconnect(false),
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport, "Failed to create OPC UA client", "")
	}
	if err := c.Connect(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Cannot connect to %s", endpoint),
			"Check the server address and that port 4840 is reachable")
	}
	return c, nil
}
