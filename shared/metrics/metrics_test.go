package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues(ServerUI, OutcomeFailure))
	RecordLogin(ServerUI, OutcomeFailure)
	RecordLogin(ServerUI, OutcomeFailure)
	after := testutil.ToFloat64(LoginAttemptsTotal.WithLabelValues(ServerUI, OutcomeFailure))
	assert.Equal(t, before+2, after)
}
