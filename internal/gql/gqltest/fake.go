// Package gqltest fakes the backend for packages that take a graphql.Client.
package gqltest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Khan/genqlient/graphql"
)

// Responder returns the JSON "data" payload for one request.
type Responder func(req *graphql.Request) (string, error)

// Client answers genqlient requests by operation name with canned JSON.
type Client struct {
	mu         sync.Mutex
	responders map[string]Responder
	calls      map[string]int
}

func New() *Client {
	return &Client{
		responders: make(map[string]Responder),
		calls:      make(map[string]int),
	}
}

// On answers every opName request with data.
func (c *Client) On(opName string, data string) *Client {
	return c.Handle(opName, func(*graphql.Request) (string, error) { return data, nil })
}

func (c *Client) Handle(opName string, responder Responder) *Client {
	c.mu.Lock()
	c.responders[opName] = responder
	c.mu.Unlock()
	return c
}

func (c *Client) MakeRequest(_ context.Context, req *graphql.Request, resp *graphql.Response) error {
	c.mu.Lock()
	c.calls[req.OpName]++
	responder, ok := c.responders[req.OpName]
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("gqltest: unexpected operation %q", req.OpName)
	}

	data, err := responder(req)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), resp.Data)
}

func (c *Client) Calls(opName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[opName]
}

// Var decodes one request variable into dst.
func Var(req *graphql.Request, key string, dst any) bool {
	if req == nil || req.Variables == nil {
		return false
	}

	raw, err := json.Marshal(req.Variables)
	if err != nil {
		return false
	}

	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &values); err != nil {
		return false
	}

	entry, ok := values[key]
	if !ok || string(entry) == "null" {
		return false
	}
	return json.Unmarshal(entry, dst) == nil
}

func VarString(req *graphql.Request, key string) string {
	var value string
	Var(req, key, &value)
	return strings.TrimSpace(value)
}

func VarInt(req *graphql.Request, key string) int {
	var value int
	Var(req, key, &value)
	return value
}
