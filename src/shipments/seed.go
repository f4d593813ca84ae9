package shipments

import (
	"fmt"
	"math/rand"

	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/utils"
	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/google/uuid"
)

var demoColors = []string{"red", "rust", "white", "black", "silver", "blue"}

// SeedDemo fills the store with n made-up items, for trying out the app
// without typing them in.
func SeedDemo(s *Store, n int) []models.Item {
	for i := 0; i < n; i++ {
		item := models.Item{
			ID:    uuid.New().String(),
			Name:  lorem.Sentence(1, 4),
			Phone: randomPhone(),
		}
		if randomBool() {
			item.Weight = utils.P(float64(rand.Intn(50000)) / 100)
		}
		if randomBool() {
			item.Color = utils.P(demoColors[rand.Intn(len(demoColors))])
		}
		if randomBool() {
			item.Important = utils.P(randomBool())
		}

		utils.Must1(s.Send(item))
	}
	return s.List()
}

func randomPhone() string {
	return fmt.Sprintf("+1 %03d %03d %04d", 200+rand.Intn(800), rand.Intn(1000), rand.Intn(10000))
}

func randomBool() bool {
	return rand.Intn(2) == 1
}
