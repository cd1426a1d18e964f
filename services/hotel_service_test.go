package services

import (
	"testing"

	"hotelbooking/constants"
	"hotelbooking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixtures() []models.Hotel {
	return []models.Hotel{
		{ID: 1, Name: "Khách sạn Hoa Sen", Location: "Đà Lạt", Type: constants.HotelTypeHotel,
			Amenities: models.StringList{"hồ bơi", "wifi"}},
		{ID: 2, Name: "Villa Hướng Dương", Location: "Vũng Tàu", Type: constants.HotelTypeVilla,
			Amenities: models.StringList{"bbq", "hồ bơi riêng"}},
		{ID: 3, Name: "Nhà nghỉ Bình Minh", Location: "Đà Nẵng", Type: constants.HotelTypeHotel},
	}
}

func TestSearchHotelsByName(t *testing.T) {
	scored := SearchHotels("hoa sen", searchFixtures())

	require.NotEmpty(t, scored)
	assert.Equal(t, uint(1), scored[0].Hotel.ID)
}

func TestSearchHotelsIgnoresDiacritics(t *testing.T) {
	// Query không dấu vẫn khớp tên có dấu
	scored := SearchHotels("villa huong duong", searchFixtures())

	require.NotEmpty(t, scored)
	assert.Equal(t, uint(2), scored[0].Hotel.ID)
}

func TestSearchHotelsSortedByScore(t *testing.T) {
	scored := SearchHotels("khách sạn đà lạt hồ bơi", searchFixtures())

	require.NotEmpty(t, scored)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
	assert.Equal(t, uint(1), scored[0].Hotel.ID)
}

func TestSearchHotelsEmptyResult(t *testing.T) {
	scored := SearchHotels("zzzzzz", searchFixtures())
	assert.Empty(t, scored)
}

func TestParseHotelType(t *testing.T) {
	assert.Equal(t, constants.HotelTypeHotel, parseHotelType("khách sạn gần biển"))
	assert.Equal(t, constants.HotelTypeVilla, parseHotelType("villa có hồ bơi"))
	assert.Equal(t, -1, parseHotelType("chỗ ở giá rẻ"))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("dalat", "dalat"))
	assert.Greater(t, calculateSimilarity("dalat", "da lat"), 0.6)
	assert.Less(t, calculateSimilarity("dalat", "saigon"), 0.4)
}
