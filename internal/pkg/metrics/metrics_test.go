package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInteractionCounter(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.Interaction("set_reaction", OutcomeChanged)
	m.Interaction("set_reaction", OutcomeChanged)
	m.Interaction("set_reaction", OutcomeNoop)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Interactions.WithLabelValues("set_reaction", OutcomeChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Interactions.WithLabelValues("set_reaction", OutcomeNoop)))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop()
		Nop()
	})
}
