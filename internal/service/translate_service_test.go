package service

import (
	"context"
	"testing"
	"time"

	"moveasy-api/internal/translation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTranslateService(provider *MockTranslationProvider) (*TranslateService, *translation.Cache) {
	cache := translation.NewCache(time.Hour, nil)
	return NewTranslateService(provider, cache), cache
}

func TestTranslateService_Text(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		source       string
		target       string
		setupMock    func(*MockTranslationProvider)
		expected     string
		invalidInput bool
	}{
		{name: "missing text", text: "", target: "zh", invalidInput: true},
		{name: "missing target", text: "Hello", target: "", invalidInput: true},
		{
			name:   "source defaults to auto",
			text:   "Hello",
			target: "zh",
			setupMock: func(m *MockTranslationProvider) {
				m.On("Translate", mock.Anything, []string{"Hello"}, "auto", "zh").Return([]string{"你好"}, nil)
			},
			expected: "你好",
		},
		{
			name:     "same language is returned as is",
			text:     "Hello",
			source:   "en",
			target:   "en",
			expected: "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockTranslationProvider)
			if tt.setupMock != nil {
				tt.setupMock(provider)
			}
			svc, _ := newTranslateService(provider)

			got, err := svc.Text(context.Background(), tt.text, tt.source, tt.target)

			if tt.invalidInput {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			provider.AssertExpectations(t)
		})
	}
}

func TestTranslateService_Batch_UsesCache(t *testing.T) {
	provider := new(MockTranslationProvider)
	provider.On("Translate", mock.Anything, []string{"Rent"}, "en", "zh").Return([]string{"租金"}, nil).Once()

	svc, cache := newTranslateService(provider)
	ctx := context.Background()
	cache.Set(ctx, "Studio", "zh", "开间")

	got, err := svc.Batch(ctx, []string{"Studio", "", "Rent"}, "en", "zh")
	require.NoError(t, err)
	assert.Equal(t, []string{"开间", "", "租金"}, got)

	again, err := svc.Batch(ctx, []string{"Rent"}, "en", "zh")
	require.NoError(t, err)
	assert.Equal(t, []string{"租金"}, again)
	provider.AssertNumberOfCalls(t, "Translate", 1)
}

func TestTranslateService_Batch_Errors(t *testing.T) {
	provider := new(MockTranslationProvider)
	provider.On("Translate", mock.Anything, []string{"Rent"}, "auto", "zh").Return(nil, assert.AnError).Once()
	provider.On("Translate", mock.Anything, []string{"Area"}, "auto", "zh").Return([]string{}, nil).Once()

	svc, _ := newTranslateService(provider)
	ctx := context.Background()

	_, err := svc.Batch(ctx, nil, "", "zh")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Batch(ctx, []string{"Rent"}, "", "zh")
	assert.ErrorIs(t, err, assert.AnError)

	_, err = svc.Batch(ctx, []string{"Area"}, "", "zh")
	assert.Error(t, err)
}

func TestTranslateService_JSON(t *testing.T) {
	provider := new(MockTranslationProvider)
	provider.On("Translate", mock.Anything, mock.MatchedBy(func(texts []string) bool {
		return len(texts) == 3
	}), "auto", "zh").Return(func(_ context.Context, texts []string, _, _ string) []string {
		dict := map[string]string{"Search": "搜索", "Rent": "租金", "Areas": "区域"}
		out := make([]string, len(texts))
		for i, s := range texts {
			out[i] = dict[s]
		}
		return out
	}, nil)

	svc, _ := newTranslateService(provider)

	input := map[string]any{
		"title": "Search",
		"nav":   []any{"Rent", "Areas", "  "},
		"meta":  map[string]any{"count": 3.0, "again": "Search", "flag": true},
	}

	got, err := svc.JSON(context.Background(), input, "", "zh")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title": "搜索",
		"nav":   []any{"租金", "区域", "  "},
		"meta":  map[string]any{"count": 3.0, "again": "搜索", "flag": true},
	}, got)
	assert.Equal(t, "Search", input["title"])
}

func TestTranslateService_JSON_NoStrings(t *testing.T) {
	provider := new(MockTranslationProvider)
	svc, _ := newTranslateService(provider)

	input := map[string]any{"count": 1.0}
	got, err := svc.JSON(context.Background(), input, "", "zh")
	require.NoError(t, err)
	assert.Equal(t, input, got)
	provider.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.JSON(context.Background(), nil, "", "zh")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTranslateService_ClearCache(t *testing.T) {
	provider := new(MockTranslationProvider)
	svc, cache := newTranslateService(provider)
	ctx := context.Background()

	cache.Set(ctx, "Rent", "zh", "租金")
	cache.Set(ctx, "租金", "en", "Rent")

	require.NoError(t, svc.ClearCache(ctx, "zh"))
	_, ok := cache.Get(ctx, "Rent", "zh")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "租金", "en")
	assert.True(t, ok)

	require.NoError(t, svc.ClearCache(ctx, ""))
	_, ok = cache.Get(ctx, "租金", "en")
	assert.False(t, ok)
}
