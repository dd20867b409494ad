package translation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Translate(ctx context.Context, texts []string, source, target string) ([]string, error) {
	args := m.Called(ctx, texts, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestAdapter_ResolveToEnglish(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		setupMock     func(*MockProvider)
		expected      string
		providerCalls int
	}{
		{
			name:     "english passes through",
			text:     "West Village",
			expected: "West Village",
		},
		{
			name:     "exact dictionary hit",
			text:     "曼哈顿",
			expected: "Manhattan",
		},
		{
			name:     "substring dictionary hit",
			text:     "霍博肯公寓",
			expected: "Hoboken公寓",
		},
		{
			name: "provider translation",
			text: "中央公园",
			setupMock: func(m *MockProvider) {
				m.On("Translate", mock.Anything, []string{"中央公园"}, "zh", "en").Return([]string{" Central Park "}, nil)
			},
			expected:      "Central Park",
			providerCalls: 1,
		},
		{
			name: "provider failure returns input",
			text: "中央公园",
			setupMock: func(m *MockProvider) {
				m.On("Translate", mock.Anything, []string{"中央公园"}, "zh", "en").Return(nil, assert.AnError)
			},
			expected:      "中央公园",
			providerCalls: 1,
		},
		{
			name: "empty translation returns input",
			text: "中央公园",
			setupMock: func(m *MockProvider) {
				m.On("Translate", mock.Anything, []string{"中央公园"}, "zh", "en").Return([]string{""}, nil)
			},
			expected:      "中央公园",
			providerCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockProvider)
			if tt.setupMock != nil {
				tt.setupMock(provider)
			}
			adapter := NewAdapter(NewDictionary(), NewCache(time.Hour, nil), provider)

			got := adapter.ResolveToEnglish(context.Background(), tt.text)

			assert.Equal(t, tt.expected, got)
			provider.AssertNumberOfCalls(t, "Translate", tt.providerCalls)
		})
	}
}

func TestAdapter_CachesProviderResult(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Translate", mock.Anything, []string{"中央公园"}, "zh", "en").Return([]string{"Central Park"}, nil).Once()

	c := NewCache(time.Hour, nil)
	adapter := NewAdapter(nil, c, provider)
	ctx := context.Background()

	assert.Equal(t, "Central Park", adapter.ResolveToEnglish(ctx, "中央公园"))
	assert.Equal(t, "Central Park", adapter.ResolveToEnglish(ctx, "中央公园"))
	provider.AssertNumberOfCalls(t, "Translate", 1)

	v, ok := c.Get(ctx, "中央公园", "en")
	assert.True(t, ok)
	assert.Equal(t, "Central Park", v)
}

func TestAdapter_FailureIsNotCached(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Translate", mock.Anything, mock.Anything, "zh", "en").Return(nil, assert.AnError)

	c := NewCache(time.Hour, nil)
	adapter := NewAdapter(nil, c, provider)
	ctx := context.Background()

	adapter.ResolveToEnglish(ctx, "中央公园")
	adapter.ResolveToEnglish(ctx, "中央公园")

	provider.AssertNumberOfCalls(t, "Translate", 2)
	_, ok := c.Get(ctx, "中央公园", "en")
	assert.False(t, ok)
}

func TestAdapter_NilProvider(t *testing.T) {
	adapter := NewAdapter(nil, nil, nil)
	assert.Equal(t, "中央公园", adapter.ResolveToEnglish(context.Background(), "中央公园"))
}

func TestAdapter_Resolve(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Translate", mock.Anything, []string{"中央公园"}, "zh", "en").Return([]string{"  "}, nil)

	adapter := NewAdapter(nil, nil, provider)

	got, err := adapter.Resolve(context.Background(), "中央公园")
	assert.ErrorIs(t, err, ErrEmptyTranslation)
	assert.Equal(t, "中央公园", got)

	_, err = NewAdapter(nil, nil, nil).Resolve(context.Background(), "中央公园")
	assert.ErrorIs(t, err, ErrNoProvider)

	got, err = adapter.Resolve(context.Background(), "Chelsea")
	assert.NoError(t, err)
	assert.Equal(t, "Chelsea", got)
}
