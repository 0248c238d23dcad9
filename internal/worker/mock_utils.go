package worker

import (
	"context"

	"github.com/civiclab/veritas/internal/provider"
)

type MockProvider struct {
	ProviderName string
	Response     *provider.Response
	Err          error
}

func (m *MockProvider) Name() string {
	return m.ProviderName
}

func (m *MockProvider) Verify(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}
