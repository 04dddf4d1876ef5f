// Package seed composes the prompts used to generate each round's seed image
// when no language model is configured.
package seed

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	subjects = []string{
		"a retired astronaut",
		"a nervous octopus",
		"a marching band of raccoons",
		"a lighthouse keeper",
		"a tiny dragon",
		"a grandmother on roller skates",
		"a robot chef",
		"a very serious penguin",
		"two rival wizards",
		"a cat wearing a crown",
	}
	actions = []string{
		"baking a cake",
		"hosting a talk show",
		"escaping a maze",
		"painting a self portrait",
		"arguing about the weather",
		"training for a marathon",
		"opening a mysterious box",
		"teaching a yoga class",
		"fixing a flying car",
	}
	settings = []string{
		"on the surface of the moon",
		"in a flooded library",
		"at a haunted carnival",
		"inside a snow globe",
		"on a crowded subway",
		"in a jungle made of candy",
		"at the bottom of the ocean",
		"during a thunderstorm",
	}
	styles = []string{
		"oil painting",
		"pixel art",
		"watercolor",
		"1970s photograph",
		"claymation still",
		"comic book panel",
		"ukiyo-e woodblock print",
	}
)

// Config for the composer
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Composer builds random scene descriptions. It is safe for concurrent use.
type Composer struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new composer
func New(cfg *Config) *Composer {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Composer{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Compose returns a prompt of the form "<subject> <action> <setting>, <style>"
func (c *Composer) Compose() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	parts := []string{
		c.pick(subjects),
		c.pick(actions),
		c.pick(settings) + ",",
		c.pick(styles),
	}
	return strings.Join(parts, " ")
}

// Theme returns a short subject and setting pair used to steer a language model
func (c *Composer) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pick(subjects) + " " + c.pick(settings)
}

func (c *Composer) pick(options []string) string {
	return options[c.random.Intn(len(options))]
}
