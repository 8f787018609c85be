package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/lookalike/web/internal/domain"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

// MockMatchClient is a mock implementation of domain.MatchClient
type MockMatchClient struct {
	mu           sync.Mutex
	matchResult  *domain.MatchResponse
	matchError   error
	filterResult *domain.FilterOptions
	filterError  error
	block        chan struct{}
	filterBlock  chan struct{}
	requests     []*domain.MatchRequest
	filterCalls  int
}

func NewMockMatchClient() *MockMatchClient {
	return &MockMatchClient{matchResult: &domain.MatchResponse{}}
}

func (m *MockMatchClient) FetchFilters(ctx context.Context) (*domain.FilterOptions, error) {
	m.mu.Lock()
	m.filterCalls++
	block := m.filterBlock
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.filterError != nil {
		return nil, m.filterError
	}
	return m.filterResult, nil
}

func (m *MockMatchClient) Match(ctx context.Context, req *domain.MatchRequest) (*domain.MatchResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.matchError != nil {
		return nil, m.matchError
	}
	return m.matchResult, nil
}

func (m *MockMatchClient) Requests() []*domain.MatchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.MatchRequest(nil), m.requests...)
}

func (m *MockMatchClient) FilterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filterCalls
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data     map[string]interface{}
	setError error
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string]interface{})}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func float(v float64) *float64 { return &v }
