package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reservas/internal/db"
)

// The overlap filter encodes the single symmetric inclusive condition
// existing.start <= new.end AND existing.end >= new.start, so ranges that
// touch on a boundary day (existing ends 2025-06-10, new starts 2025-06-10)
// are selected as conflicts.
func TestOverlapFilter(t *testing.T) {
	vehicleID := primitive.NewObjectID()
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	filter := overlapFilter(vehicleID, start, end)

	assert.Equal(t, vehicleID, filter["vehicle_id"])
	assert.Equal(t, db.ReservationActive, filter["status"])
	assert.Equal(t, bson.M{"$lte": end}, filter["start_date"])
	assert.Equal(t, bson.M{"$gte": start}, filter["end_date"])
}
