package questionbank

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// Question is one multiple-choice entry of the fixed bank. Correct holds the
// canonical option text; scoring is exact string equality against it.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// Bank is the fixed question pool an exam paper is sampled from.
type Bank struct {
	mu        sync.Mutex
	questions []Question
	rng       *rand.Rand
}

func New(questions []Question) *Bank {
	return &Bank{
		questions: questions,
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}
}

// Load reads the bank from a JSON file of Question records.
func Load(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank %s is empty", path)
	}
	log.Info().Int("questions", len(questions)).Str("path", path).Msg("Question bank loaded")
	return New(questions), nil
}

func (b *Bank) Size() int {
	return len(b.questions)
}

// Sample draws n distinct questions in random presentation order. When n
// exceeds the bank size the whole bank is returned, shuffled.
func (b *Bank) Sample(n int) []Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	shuffled := make([]Question, len(b.questions))
	copy(shuffled, b.questions)
	b.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
