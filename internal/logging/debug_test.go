package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_TopicGating(t *testing.T) {
	enabledTopics = map[string]bool{"filter": true}

	assert.True(t, New("filter").Enabled())
	assert.False(t, New("catalog").Enabled())
}

func TestNew_Wildcard(t *testing.T) {
	enabledTopics = map[string]bool{"*": true}

	assert.True(t, New("anything").Enabled())
}

func TestParseTopics(t *testing.T) {
	assert.Empty(t, parseTopics(""))
	assert.Equal(t, map[string]bool{"*": true}, parseTopics("all"))
	assert.Equal(t, map[string]bool{"catalog": true, "sim": true}, parseTopics("catalog, sim"))
}

func BenchmarkDebug_Disabled(b *testing.B) {
	enabledTopics = map[string]bool{}
	log := New("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Debug("msg", "k", "v", "n", 42)
	}
}
