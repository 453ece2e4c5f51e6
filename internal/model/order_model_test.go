package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusNew, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled} {
		assert.True(t, KnownStatus(s), "%s", s)
	}
	for _, s := range []OrderStatus{"", "NEW", "confirmed", "returned"} {
		assert.False(t, KnownStatus(s), "%s", s)
	}
}
