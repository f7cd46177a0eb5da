package remote

import (
	"net/rpc"

	"github.com/pkg/errors"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/proto"
)

// New dials a proxy started with Proxy.
func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Find(addr proto.Addr) (proto.Device, error) {
	var resp FindResponse
	if err := c.rpc.Call("Service.Find", FindRequest{Bus: addr.Bus, Port: addr.Port}, &resp); err != nil {
		return nil, errors.Wrapf(err, "find %s", addr)
	}

	if !resp.Found {
		return nil, errors.Wrap(proto.ErrDeviceNotFound, addr.String())
	}

	return &unit{c: c, addr: addr}, nil
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

type unit struct {
	c    *Client
	addr proto.Addr
}

func (u *unit) Addr() proto.Addr {
	return u.addr
}

func (u *unit) DrawLCD(icon bitmap.Icon) error {
	var resp DrawLCDResponse
	if err := u.c.rpc.Call("Service.DrawLCD", &DrawLCDRequest{
		Bus:  u.addr.Bus,
		Port: u.addr.Port,
		Icon: icon[:],
	}, &resp); err != nil {
		return errors.Wrapf(err, "draw lcd %s", u.addr)
	}

	if resp.Missing {
		return errors.Wrap(proto.ErrDeviceNotFound, u.addr.String())
	}
	if resp.Status < 0 {
		return errors.WithStack(&proto.StatusError{Code: resp.Status})
	}

	return nil
}
