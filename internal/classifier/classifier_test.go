package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCustom(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		want   bool
	}{
		{name: "system metric", metric: "system.cpu.idle", want: false},
		{name: "aws metric", metric: "aws.ec2.cpu", want: false},
		{name: "kubernetes state without dot", metric: "kubernetes_state.pod.ready", want: false},
		{name: "kubernetes state core", metric: "kubernetes_state_core.node.count", want: false},
		{name: "kube dns", metric: "kube_dns.response.count", want: false},
		{name: "custom metric", metric: "myapp.orders.count", want: true},
		{name: "empty name", metric: "", want: true},
		{name: "prefix without dot", metric: "system", want: true},
		{name: "case sensitive", metric: "System.cpu.idle", want: true},
		{name: "prefix in the middle", metric: "myapp.aws.calls", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCustom(tt.metric))
		})
	}
}

func TestIsCustom_EveryStandardPrefix(t *testing.T) {
	for _, prefix := range StandardPrefixes {
		assert.False(t, IsCustom(prefix+"anything"), "prefix %q should be classified as standard", prefix)
	}
}

func TestIsCustom_Idempotent(t *testing.T) {
	for _, metric := range []string{"myapp.latency", "docker.cpu.usage", ""} {
		first := IsCustom(metric)
		second := IsCustom(metric)
		assert.Equal(t, first, second, "classification of %q changed between calls", metric)
	}
}

func TestClassifier_ExtraPrefixes(t *testing.T) {
	c := New("istio.", "")

	assert.False(t, c.IsCustom("istio.mesh.request.count"))
	assert.False(t, c.IsCustom("system.load.1"))
	assert.True(t, c.IsCustom("myapp.orders.count"))
	assert.True(t, c.IsCustom(""), "blank extra prefix must not match everything")
	assert.Len(t, c.Prefixes(), len(StandardPrefixes)+1)
}

func TestClassifier_MatchesPackageFunction(t *testing.T) {
	c := New()
	for _, metric := range []string{"myapp.a", "jvm.heap", "redis.net.clients", "confluent_cloud.kafka.x"} {
		assert.Equal(t, IsCustom(metric), c.IsCustom(metric), metric)
	}
}

func TestClassifier_PrefixesIsCopy(t *testing.T) {
	c := New()
	p := c.Prefixes()
	p[0] = "myapp."
	assert.True(t, c.IsCustom("myapp.orders.count"))
}
