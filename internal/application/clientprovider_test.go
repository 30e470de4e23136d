package application_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/adminpanel/internal/application"
)

func TestProfileSourceProvider_GetReturnsInitialSource(t *testing.T) {
	source := &mockProfileSource{}
	provider := application.NewProfileSourceProvider(source, false)

	assert.Same(t, source, provider.Get())
	assert.False(t, provider.Authenticated())
}

func TestProfileSourceProvider_ReplaceSwapsSource(t *testing.T) {
	original := &mockProfileSource{}
	replacement := &mockProfileSource{token: "ghp_x"}

	provider := application.NewProfileSourceProvider(original, false)
	provider.Replace(replacement, true)

	assert.Same(t, replacement, provider.Get())
	assert.True(t, provider.Authenticated())
}

func TestProfileSourceProvider_HasSourceReturnsFalseForNil(t *testing.T) {
	provider := application.NewProfileSourceProvider(nil, false)

	require.False(t, provider.HasSource())

	provider.Replace(&mockProfileSource{}, false)

	require.True(t, provider.HasSource())
}

func TestProfileSourceProvider_ConcurrentGetReplaceSafety(t *testing.T) {
	source1 := &mockProfileSource{}
	source2 := &mockProfileSource{}
	provider := application.NewProfileSourceProvider(source1, false)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines * 2)

	for range goroutines {
		go func() {
			defer wg.Done()
			assert.NotNil(t, provider.Get())
		}()
		go func() {
			defer wg.Done()
			provider.Replace(source2, true)
		}()
	}

	wg.Wait()

	assert.Same(t, source2, provider.Get())
}
