package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/models"
)

// memorySource is an in-memory DataSource keyed by "scope!address" and name.
type memorySource struct {
	scopes []string
	cells  map[string]models.Table
	names  map[string]models.Table
	calls  []string
}

func (m *memorySource) Values(scope, address string) (models.Table, error) {
	m.calls = append(m.calls, "values:"+scope+"!"+address)
	t, ok := m.cells[scope+"!"+strings.ToUpper(address)]
	if !ok {
		return nil, fmt.Errorf("bad address %q", address)
	}
	return t, nil
}

func (m *memorySource) ValuesByName(name, scope string) (models.Table, bool, error) {
	m.calls = append(m.calls, "name:"+name)
	t, ok := m.names[strings.ToLower(name)]
	return t, ok, nil
}

func (m *memorySource) Scopes() []string {
	return m.scopes
}

// scriptedClient returns canned responses and records the requests it saw.
type scriptedClient struct {
	responses []string
	failAt    int
	failErr   error
	requests  []models.GenerationRequest
	onCall    func(i int)
}

func (c *scriptedClient) Complete(_ context.Context, req models.GenerationRequest) (string, error) {
	i := len(c.requests)
	c.requests = append(c.requests, req)
	if c.onCall != nil {
		c.onCall(i)
	}
	if c.failErr != nil && i == c.failAt {
		return "", c.failErr
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", errors.New("no scripted response")
}
