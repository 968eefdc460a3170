package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingEvent_StampBookingID(t *testing.T) {
	t.Run("Rewrites the payload id", func(t *testing.T) {
		e := &BookingEvent{
			Type:    EventBookingAdmitted,
			Payload: []byte(`{"booking_id":0,"booking_code":"BK-ABCD1234","renter_id":1}`),
		}
		e.StampBookingID(77)

		assert.Equal(t, int64(77), e.BookingID)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(e.Payload, &body))
		assert.EqualValues(t, 77, body["booking_id"])
		assert.Equal(t, "BK-ABCD1234", body["booking_code"])
	})

	t.Run("Leaves a non-JSON payload untouched", func(t *testing.T) {
		e := &BookingEvent{Payload: []byte("not json")}
		e.StampBookingID(77)

		assert.Equal(t, int64(77), e.BookingID)
		assert.Equal(t, []byte("not json"), e.Payload)
	})
}
