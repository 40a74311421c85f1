package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(leadsRegistered.WithLabelValues("google_maps"))
	RecordLeadRegistered("google_maps")
	assert.Equal(t, before+1, testutil.ToFloat64(leadsRegistered.WithLabelValues("google_maps")))

	before = testutil.ToFloat64(outreachRecorded.WithLabelValues("email", "true"))
	RecordOutreach("email", true)
	assert.Equal(t, before+1, testutil.ToFloat64(outreachRecorded.WithLabelValues("email", "true")))

	before = testutil.ToFloat64(queueMessages.WithLabelValues("q.leads.scraped", "ack"))
	RecordQueueMessage("q.leads.scraped", "ack")
	assert.Equal(t, before+1, testutil.ToFloat64(queueMessages.WithLabelValues("q.leads.scraped", "ack")))

	before = testutil.ToFloat64(emailsCleared)
	RecordEmailsCleared(3)
	assert.Equal(t, before+3, testutil.ToFloat64(emailsCleared))
}
