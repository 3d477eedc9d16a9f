// Package classifier decides whether a metric name is a custom metric.
//
// A metric is custom when its name does not start with any of the namespace
// prefixes used by the platform itself, cloud providers, system and runtime
// checks, or common third-party integrations.
package classifier

import "strings"

// StandardPrefixes lists the vendor and integration namespaces. Matching is a
// case-sensitive prefix test, so "kubernetes_state" also covers
// "kubernetes_state_core.*".
var StandardPrefixes = []string{
	"datadog.", "aws.", "gcp.", "azure.", "system.", "synthetics.",
	"docker.", "kubernetes.", "postgresql.", "redis.", "nginx.", "jvm.",
	"jmx.", "vm.", "elasticsearch.", "dd.", "elastic_cloud.", "containerd.",
	"kubernetes_state", "process.", "kafka.", "confluent_cloud.", "cloudflare.",
	"timescale.", "container.", "cri.", "kubelet.", "kube_proxy.", "kube_scheduler.",
	"kube_controller_manager.", "kube_apiserver.", "kube_dns.",
}

// IsCustom reports whether name matches none of StandardPrefixes.
func IsCustom(name string) bool {
	return !hasAnyPrefix(name, StandardPrefixes)
}

// Classifier applies StandardPrefixes plus any extra prefixes.
type Classifier struct {
	prefixes []string
}

// New returns a Classifier for StandardPrefixes extended with extra.
// Empty extra entries are ignored since they would match every name.
func New(extra ...string) *Classifier {
	prefixes := make([]string, 0, len(StandardPrefixes)+len(extra))
	prefixes = append(prefixes, StandardPrefixes...)
	for _, p := range extra {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Classifier{prefixes: prefixes}
}

// IsCustom reports whether name matches none of the classifier prefixes.
func (c *Classifier) IsCustom(name string) bool {
	return !hasAnyPrefix(name, c.prefixes)
}

// Prefixes returns a copy of the prefixes in match order.
func (c *Classifier) Prefixes() []string {
	out := make([]string, len(c.prefixes))
	copy(out, c.prefixes)
	return out
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
