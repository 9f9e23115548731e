package realtime

import (
	"math/rand/v2"
	"sync"
	"time"
)

// pushChars is ordered by ASCII value so generated keys sort by creation time.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// pushIDGenerator produces 20-character keys in the Firebase push format:
// 8 characters of millisecond timestamp followed by 12 random characters.
// Keys generated in the same millisecond increment the random tail, so the
// sequence is strictly increasing for a single generator.
type pushIDGenerator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTime int64
	lastRand [12]int
}

func newPushIDGenerator(now func() time.Time) *pushIDGenerator {
	if now == nil {
		now = time.Now
	}

	return &pushIDGenerator{now: now}
}

func (g *pushIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now().UnixMilli()
	duplicate := ts <= g.lastTime
	if duplicate {
		ts = g.lastTime
	}
	g.lastTime = ts

	var id [20]byte
	for i := 7; i >= 0; i-- {
		id[i] = pushChars[ts%64]
		ts /= 64
	}

	if duplicate {
		i := len(g.lastRand) - 1
		for ; i >= 0 && g.lastRand[i] == 63; i-- {
			g.lastRand[i] = 0
		}
		if i >= 0 {
			g.lastRand[i]++
		}
	} else {
		for i := range g.lastRand {
			g.lastRand[i] = rand.IntN(64)
		}
	}

	for i, r := range g.lastRand {
		id[8+i] = pushChars[r]
	}

	return string(id[:])
}
