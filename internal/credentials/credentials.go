package credentials

import (
	"crypto/rand"
	"math/big"
)

// Word lists for generating kid-friendly passwords
var adjectives = []string{
	"happy", "sunny", "brave", "bright", "swift", "clever", "jolly", "mighty",
	"lucky", "magic", "bouncy", "cheerful", "daring", "gentle", "lively", "merry",
	"perky", "quick", "snappy", "turbo", "zippy", "bold", "cosmic", "epic",
}

var nouns = []string{
	"dragon", "tiger", "eagle", "dolphin", "panda", "lion", "wolf", "fox",
	"hawk", "phoenix", "unicorn", "rocket", "wizard", "knight", "pirate", "robot",
	"explorer", "ranger", "comet", "thunder", "tornado", "flame", "storm", "racer",
}

// GenerateChildPassword generates a memorable password in the format
// "adjective-noun-NN". Used when a child registers without choosing a
// password, and for password regeneration.
func GenerateChildPassword() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	num, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", err
	}
	digits := []byte{byte('0' + num.Int64()/10), byte('0' + num.Int64()%10)}

	return adjective + "-" + noun + "-" + string(digits), nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[num.Int64()], nil
}
