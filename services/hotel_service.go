package services

import (
	"sort"
	"strings"
	"sync"

	"hotelbooking/constants"
	"hotelbooking/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ScoredHotel khách sạn kèm điểm phù hợp với query tìm kiếm
type ScoredHotel struct {
	Hotel models.Hotel
	Score int
}

// normalizeInput chuẩn hóa chuỗi: bỏ dấu, thường hóa
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// createMatcher tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity tính độ tương đồng giữa hai chuỗi theo levenshtein
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

// parseHotelType đoán loại chỗ ở từ query
func parseHotelType(query string) int {
	hotelKeywords := []string{"khách sạn", "hotel", "khach san", "ks"}
	villaKeywords := []string{"villa", "biệt thự", "biet thu", "nhà nguyên căn"}

	normalizedQuery := normalizeInput(query)

	hotelMatch := createMatcher(hotelKeywords).Closest(normalizedQuery)
	villaMatch := createMatcher(villaKeywords).Closest(normalizedQuery)

	if hotelMatch != "" && strings.Contains(normalizedQuery, hotelMatch) {
		return constants.HotelTypeHotel
	}
	if villaMatch != "" && strings.Contains(normalizedQuery, villaMatch) {
		return constants.HotelTypeVilla
	}
	return -1
}

// prepareLocationList gom danh sách địa điểm duy nhất cho closestmatch
func prepareLocationList(hotels []models.Hotel) []string {
	uniqueValues := make(map[string]bool)
	for _, h := range hotels {
		if h.Location != "" {
			uniqueValues[normalizeInput(h.Location)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

func calculateHotelScore(query string, hotel models.Hotel, cmLocation *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	if t := parseHotelType(normalizedQuery); t != -1 && t == hotel.Type {
		score += 20
	}

	normalizedName := normalizeInput(hotel.Name)
	if strings.Contains(normalizedQuery, normalizedName) || strings.Contains(normalizedName, normalizedQuery) {
		score += 25
	} else if calculateSimilarity(normalizedQuery, normalizedName) > 0.6 {
		score += 15
	}

	if cmLocation != nil && cmLocation.Closest(normalizedQuery) == normalizeInput(hotel.Location) {
		score += 13
	}

	score += calculateAmenityScore(normalizedQuery, hotel.Amenities)

	return score
}

func calculateAmenityScore(query string, amenities models.StringList) int {
	maxAmenityScore := 12
	amenityScore := 0

	for _, amenity := range amenities {
		normalizedAmenity := normalizeInput(amenity)
		similarity := calculateSimilarity(query, normalizedAmenity)
		if similarity > 0.7 || strings.Contains(query, normalizedAmenity) {
			amenityScore += 4
			if amenityScore >= maxAmenityScore {
				break
			}
		}
	}
	return amenityScore
}

// SearchHotels chấm điểm song song từng khách sạn theo query và trả về
// danh sách đã sắp theo điểm giảm dần, loại điểm 0.
func SearchHotels(query string, hotels []models.Hotel) []ScoredHotel {
	cmLocation := createMatcher(prepareLocationList(hotels))

	scoreCh := make(chan ScoredHotel, len(hotels))
	var wg sync.WaitGroup

	for _, hotel := range hotels {
		wg.Add(1)
		go func(h models.Hotel) {
			defer wg.Done()
			score := calculateHotelScore(query, h, cmLocation)
			if score > 0 {
				scoreCh <- ScoredHotel{Hotel: h, Score: score}
			}
		}(hotel)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	var scored []ScoredHotel
	for s := range scoreCh {
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
