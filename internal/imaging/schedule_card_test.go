package imaging

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
)

func TestRenderScheduleCard(t *testing.T) {
	slots := []*model.Slot{
		{ID: 1, StartTime: time.Date(2030, 11, 25, 10, 0, 0, 0, time.UTC)},
		{ID: 2, StartTime: time.Date(2030, 11, 25, 14, 0, 0, 0, time.UTC), IsBooked: true},
		{ID: 3, StartTime: time.Date(2030, 11, 27, 9, 0, 0, 0, time.UTC)},
	}

	data, err := RenderScheduleCard(slots)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cardWidth, img.Bounds().Dx())
}

func TestRenderScheduleCardEmpty(t *testing.T) {
	data, err := RenderScheduleCard(nil)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, minCardHeight, img.Bounds().Dy())
}

func TestGroupByDayOrdersChronologically(t *testing.T) {
	slots := []*model.Slot{
		{ID: 1, StartTime: time.Date(2030, 11, 27, 9, 0, 0, 0, time.UTC)},
		{ID: 2, StartTime: time.Date(2030, 11, 25, 14, 0, 0, 0, time.UTC)},
		{ID: 3, StartTime: time.Date(2030, 11, 25, 10, 0, 0, 0, time.UTC)},
	}

	days := groupByDay(slots)
	require.Len(t, days, 2)
	assert.Equal(t, 25, days[0].date.Day())
	require.Len(t, days[0].slots, 2)
	assert.True(t, days[0].slots[0].StartTime.Before(days[0].slots[1].StartTime))
	assert.Equal(t, 27, days[1].date.Day())
}
